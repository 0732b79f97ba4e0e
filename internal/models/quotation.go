package models

import "time"

// QuoteStatus is the lifecycle of a quote request. Transitions are
// driven by the vendor workflow on the backend; the local list is a
// read-mostly mirror and may lag behind it.
type QuoteStatus string

const (
	QuoteRequested QuoteStatus = "requested"
	QuoteResponded QuoteStatus = "responded"
	QuoteBooked    QuoteStatus = "booked"
	QuoteDeclined  QuoteStatus = "declined"
)

// Quotation is a quote request a couple sent to a vendor. Budget,
// guest count and event date are free-form on purpose; couples write
// things like "around 10k" or "late summer".
type Quotation struct {
	ID           string      `json:"id"`
	VendorHandle string      `json:"vendor_handle"`
	VendorName   string      `json:"vendor_name"`
	Category     string      `json:"category"`
	Subcategory  string      `json:"subcategory,omitempty"`
	Budget       string      `json:"budget,omitempty"`
	GuestCount   string      `json:"guest_count,omitempty"`
	EventDate    string      `json:"event_date,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	Status       QuoteStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// QuotationInput is the payload for a new quote request.
type QuotationInput struct {
	VendorHandle string
	VendorName   string
	Category     string
	Subcategory  string
	Budget       string
	GuestCount   string
	EventDate    string
	Notes        string
}
