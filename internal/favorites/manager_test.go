package favorites

import (
	"testing"

	"github.com/rs/zerolog"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewManager(store, zerolog.Nop())
}

func TestToggleTwiceRestoresOriginalSet(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if _, err := m.Toggle("florist-a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	after, err := m.Toggle("photographer-b")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(after))
	}

	after, err = m.Toggle("photographer-b")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(after) != 1 || after[0].VendorHandle != "florist-a" {
		t.Fatalf("expected original set back, got %v", after)
	}
	if m.IsFavorite("photographer-b") {
		t.Fatal("photographer-b should no longer be a favorite")
	}
}

func TestFavoriteVendorsDropsStaleHandles(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	m.Toggle("florist-a")
	m.Toggle("gone-vendor")

	catalog := []models.Vendor{
		{Handle: "florist-a", Name: "Petals & Co"},
		{Handle: "caterer-c", Name: "Feast"},
	}
	got := m.FavoriteVendors(catalog)
	if len(got) != 1 || got[0].Handle != "florist-a" {
		t.Fatalf("expected only florist-a to resolve, got %v", got)
	}
}

func TestFavoritesSurviveReload(t *testing.T) {
	t.Parallel()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := NewManager(store, zerolog.Nop())
	m.Toggle("venue-x")

	reloaded := NewManager(store, zerolog.Nop())
	if !reloaded.IsFavorite("venue-x") {
		t.Fatal("expected favorite to survive reload")
	}
}
