package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tietheknot/internal/budget"
	"tietheknot/internal/guest"
	"tietheknot/internal/models"
	"tietheknot/internal/notify"
	"tietheknot/internal/storage"
)

type fakeBackend struct {
	catalog  []models.Vendor
	quotes   []models.Quotation
	bookings []models.Booking
	fail     bool
}

func (f *fakeBackend) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.catalog, nil
}

func (f *fakeBackend) SubmitQuoteRequest(ctx context.Context, q models.Quotation) (models.Quotation, error) {
	if f.fail {
		return models.Quotation{}, errors.New("backend down")
	}
	f.quotes = append(f.quotes, q)
	return q, nil
}

func (f *fakeBackend) FetchQuoteStatuses(ctx context.Context) ([]models.Quotation, error) {
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.quotes, nil
}

func (f *fakeBackend) SubmitBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if f.fail {
		return models.Booking{}, errors.New("backend down")
	}
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBackend) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.bookings, nil
}

func newTestPlanner(t *testing.T) (*Planner, *fakeBackend, *storage.Store) {
	t.Helper()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	backend := &fakeBackend{}
	p := New(store, backend, notify.NewMockNotifier(zerolog.Nop()), budget.DefaultAlertConfig, zerolog.Nop())
	return p, backend, store
}

func TestMutationsRefreshCachedSnapshot(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPlanner(t)
	if len(p.GuestList()) != 0 {
		t.Fatalf("expected empty guest cache, got %d", len(p.GuestList()))
	}

	g, err := p.AddGuest(guest.Input{Name: "A", Side: models.SideBride})
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if len(p.GuestList()) != 1 {
		t.Fatal("cache was not refreshed after AddGuest")
	}

	if err := p.DeleteGuest(g.ID); err != nil {
		t.Fatalf("delete guest: %v", err)
	}
	if len(p.GuestList()) != 0 {
		t.Fatal("cache was not refreshed after DeleteGuest")
	}
}

func TestRefreshGuestsPullsOutOfBandMutations(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPlanner(t)
	// A bulk import writes through the manager, bypassing the
	// planner's wrappers.
	if _, err := p.Guests.Add(guest.Input{Name: "Imported"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(p.GuestList()) != 0 {
		t.Fatal("cache should be stale before the explicit refresh")
	}

	p.RefreshGuests()
	if len(p.GuestList()) != 1 {
		t.Fatal("RefreshGuests did not re-pull the snapshot")
	}
}

func TestPlannerLoadsStateFromStorageOnConstruction(t *testing.T) {
	t.Parallel()

	p, _, store := newTestPlanner(t)
	if _, err := p.AddGuest(guest.Input{Name: "Persisted"}); err != nil {
		t.Fatalf("add guest: %v", err)
	}
	info := models.WeddingInfo{Partner1: "Alex", Partner2: "Sam", WeddingDate: time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC), Location: "Lisbon"}
	if err := p.SetWeddingInfo(info); err != nil {
		t.Fatalf("set wedding info: %v", err)
	}

	rebuilt := New(store, &fakeBackend{}, notify.NewMockNotifier(zerolog.Nop()), budget.DefaultAlertConfig, zerolog.Nop())
	if len(rebuilt.GuestList()) != 1 {
		t.Fatal("expected guests to load on construction")
	}
	if rebuilt.WeddingInfo().Partner1 != "Alex" {
		t.Fatalf("wedding info did not survive reload: %+v", rebuilt.WeddingInfo())
	}
}

func TestDaysUntilWedding(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPlanner(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	if got := p.DaysUntilWedding(now); got != 0 {
		t.Fatalf("countdown with no date = %d, want 0", got)
	}

	p.SetWeddingInfo(models.WeddingInfo{WeddingDate: now.AddDate(0, 0, 10)})
	if got := p.DaysUntilWedding(now); got != 10 {
		t.Fatalf("countdown = %d, want 10", got)
	}

	p.SetWeddingInfo(models.WeddingInfo{WeddingDate: now.AddDate(0, 0, -1)})
	if got := p.DaysUntilWedding(now); got != 0 {
		t.Fatalf("countdown past the date = %d, want 0", got)
	}
}

func TestRequestQuoteKeepsLocalRecordOnBackendFailure(t *testing.T) {
	t.Parallel()

	p, backend, _ := newTestPlanner(t)
	backend.fail = true

	err := p.RequestQuote(context.Background(), models.QuotationInput{VendorHandle: "caterer-c", VendorName: "Feast"})
	if err == nil {
		t.Fatal("expected surfaced backend error")
	}
	if len(p.Quotations()) != 1 {
		t.Fatalf("local mirror should keep the record, got %d", len(p.Quotations()))
	}
}

func TestSyncReconcilesMirrors(t *testing.T) {
	t.Parallel()

	p, backend, _ := newTestPlanner(t)
	backend.catalog = []models.Vendor{{Handle: "florist-a", Name: "Petals & Co"}}

	if err := p.RequestQuote(context.Background(), models.QuotationInput{VendorHandle: "florist-a", VendorName: "Petals & Co"}); err != nil {
		t.Fatalf("request quote: %v", err)
	}
	// The vendor responded on the backend side.
	backend.quotes[0].Status = models.QuoteResponded

	if err := p.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := p.Quotations()[0].Status; got != models.QuoteResponded {
		t.Fatalf("status after sync = %s, want responded", got)
	}

	if _, err := p.ToggleFavorite("florist-a"); err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if got := p.FavoriteVendors(); len(got) != 1 || got[0].Name != "Petals & Co" {
		t.Fatalf("favorite vendors = %v", got)
	}
}

func TestDashboardSummary(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPlanner(t)
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	p.SetWeddingInfo(models.WeddingInfo{WeddingDate: now.AddDate(0, 0, 30)})
	p.AddGuest(guest.Input{Name: "A", RSVPStatus: models.RSVPAttending})
	p.AddGuest(guest.Input{Name: "B", RSVPStatus: models.RSVPInvited, GuestCount: 3})

	d := p.Dashboard(now)
	if d.DaysUntilWedding != 30 {
		t.Fatalf("countdown = %d, want 30", d.DaysUntilWedding)
	}
	if d.GuestStats.Total != 2 || d.GuestStats.TotalWithPlusOnes != 4 {
		t.Fatalf("guest stats = %+v", d.GuestStats)
	}
	if d.RSVPProgress.Attending != 1 || d.RSVPProgress.Pending != 1 {
		t.Fatalf("rsvp progress = %+v", d.RSVPProgress)
	}
}
