package booking

import (
	"errors"
	"testing"
	"time"

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

var testDate = time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

func TestCreateDoesNotRejectConflicts(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	contact := models.BookingContact{Name: "Ana", Email: "ana@example.com"}

	first, err := m.Create("venue-1", testDate, models.SlotMorning, contact, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := m.Create("venue-1", testDate, models.SlotMorning, contact, "second ask")
	if err != nil {
		t.Fatalf("create duplicate slot: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("duplicate requests must be distinct records, not merged")
	}

	if got := m.PendingCount("venue-1", testDate, models.SlotMorning); got != 2 {
		t.Fatalf("pending count = %d, want 2", got)
	}
}

func TestDateBookingsCoversBothSlotsAllStatuses(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	contact := models.BookingContact{Name: "Ben"}
	m.Create("venue-1", testDate, models.SlotMorning, contact, "")
	m.Create("venue-1", testDate, models.SlotEvening, contact, "")
	m.Create("venue-1", testDate.AddDate(0, 0, 1), models.SlotMorning, contact, "")
	m.Create("venue-2", testDate, models.SlotMorning, contact, "")

	got := m.DateBookings("venue-1", testDate)
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings for the day, got %d", len(got))
	}
}

func TestReconcileMirrorsBackendStatuses(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	contact := models.BookingContact{Name: "Cara"}
	a, _ := m.Create("venue-1", testDate, models.SlotEvening, contact, "")
	b, _ := m.Create("venue-1", testDate, models.SlotEvening, contact, "")

	// The backend confirmed one request and declined the other; the
	// local buffer just mirrors that decision.
	remote := []models.Booking{
		{ID: a.ID, Status: models.BookingConfirmed},
		{ID: b.ID, Status: models.BookingDeclined},
	}
	if err := m.Reconcile(remote); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if !m.HasConfirmed("venue-1", testDate, models.SlotEvening) {
		t.Fatal("expected a confirmed booking after reconcile")
	}
	confirmed := 0
	for _, bk := range m.DateBookings("venue-1", testDate) {
		if bk.Status == models.BookingConfirmed {
			confirmed++
		}
	}
	if confirmed != 1 {
		t.Fatalf("confirmed bookings for the slot = %d, want exactly 1", confirmed)
	}
	if got := m.PendingCount("venue-1", testDate, models.SlotEvening); got != 0 {
		t.Fatalf("pending count after reconcile = %d, want 0", got)
	}
}

func TestDeleteMissingBookingReturnsNotFound(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if err := m.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingsSurviveReload(t *testing.T) {
	t.Parallel()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := NewManager(store, zerolog.Nop())
	m.Create("venue-9", testDate, models.SlotMorning, models.BookingContact{Name: "Dee"}, "hold the date")

	reloaded := NewManager(store, zerolog.Nop())
	got := reloaded.List()
	if len(got) != 1 || got[0].VendorID != "venue-9" {
		t.Fatalf("expected booking to survive reload, got %v", got)
	}
}
