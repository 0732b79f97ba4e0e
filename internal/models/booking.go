package models

import "time"

// Slot is a half-day booking window for a vendor.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

// BookingStatus is the lifecycle of a booking request. Only the
// authoritative backend promotes a request to confirmed; local state
// mirrors its decision.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
)

// BookingContact is who the vendor should reach about a request.
type BookingContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is a per-vendor, per-date, per-slot request. At most one
// confirmed booking may exist for a (vendor, date, slot) triple;
// multiple pending requests for the same triple are allowed and are
// surfaced as a pending count, never merged.
type Booking struct {
	ID        string         `json:"id"`
	VendorID  string         `json:"vendor_id"`
	Date      time.Time      `json:"date"`
	Slot      Slot           `json:"slot"`
	Status    BookingStatus  `json:"status"`
	Contact   BookingContact `json:"contact"`
	Message   string         `json:"message,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SameDay reports whether the booking falls on the given calendar day.
func (b Booking) SameDay(date time.Time) bool {
	by, bm, bd := b.Date.UTC().Date()
	y, m, d := date.UTC().Date()
	return by == y && bm == m && bd == d
}
