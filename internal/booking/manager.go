// Package booking is a local drafting buffer for vendor booking
// requests. It is not the system of record: the backend decides which
// request gets confirmed, and Reconcile mirrors its decision back.
package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

var ErrNotFound = errors.New("booking not found")

// Manager is the single writer of the bookings collection.
type Manager struct {
	store    *storage.Store
	log      zerolog.Logger
	bookings []models.Booking
}

// NewManager loads the bookings collection from storage.
func NewManager(store *storage.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		log:      log.With().Str("component", "bookings").Logger(),
		bookings: storage.Read(store, storage.KeyBookings, []models.Booking{}),
	}
}

// List returns a snapshot of all bookings.
func (m *Manager) List() []models.Booking {
	out := make([]models.Booking, len(m.bookings))
	copy(out, m.bookings)
	return out
}

// Get retrieves a booking by id.
func (m *Manager) Get(id string) (models.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

// DateBookings returns every booking for a vendor on a calendar day,
// any status, both slots.
func (m *Manager) DateBookings(vendorID string, date time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.VendorID == vendorID && b.SameDay(date) {
			out = append(out, b)
		}
	}
	return out
}

// Create records a pending booking request. It deliberately does not
// reject on conflict: the caller disables slots that are already
// confirmed, and uniqueness of confirmed bookings is the backend's
// contract, not this buffer's.
func (m *Manager) Create(vendorID string, date time.Time, slot models.Slot, contact models.BookingContact, message string) (models.Booking, error) {
	b := models.Booking{
		ID:        uuid.NewString(),
		VendorID:  vendorID,
		Date:      date.UTC(),
		Slot:      slot,
		Status:    models.BookingPending,
		Contact:   contact,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if n := m.PendingCount(vendorID, date, slot); n > 0 {
		m.log.Info().Str("vendor_id", vendorID).Str("slot", string(slot)).Int("pending", n).
			Msg("Slot already has pending requests")
	}

	m.bookings = append(m.bookings, b)
	if err := m.persist(); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// Delete withdraws a locally drafted request.
func (m *Manager) Delete(id string) error {
	for i, b := range m.bookings {
		if b.ID != id {
			continue
		}
		m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
		return m.persist()
	}
	return ErrNotFound
}

// PendingCount is the "N pending" signal for a slot. Multiple pending
// requests for the same triple are allowed and never merged.
func (m *Manager) PendingCount(vendorID string, date time.Time, slot models.Slot) int {
	n := 0
	for _, b := range m.bookings {
		if b.VendorID == vendorID && b.Slot == slot && b.Status == models.BookingPending && b.SameDay(date) {
			n++
		}
	}
	return n
}

// HasConfirmed reports whether a confirmed booking already occupies
// the (vendor, date, slot) triple; the UI uses this to disable the
// slot before calling Create.
func (m *Manager) HasConfirmed(vendorID string, date time.Time, slot models.Slot) bool {
	for _, b := range m.bookings {
		if b.VendorID == vendorID && b.Slot == slot && b.Status == models.BookingConfirmed && b.SameDay(date) {
			return true
		}
	}
	return false
}

// Reconcile overwrites local statuses from an authoritative backend
// snapshot, matched by id. There is no local status-transition API;
// this mirror refresh is the only way a booking leaves pending.
func (m *Manager) Reconcile(remote []models.Booking) error {
	statuses := make(map[string]models.BookingStatus, len(remote))
	for _, r := range remote {
		statuses[r.ID] = r.Status
	}

	changed := false
	for i := range m.bookings {
		if status, ok := statuses[m.bookings[i].ID]; ok && status != m.bookings[i].Status {
			m.bookings[i].Status = status
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return m.persist()
}

func (m *Manager) persist() error {
	return storage.Write(m.store, storage.KeyBookings, m.bookings)
}
