package models

import "time"

// Favorite marks a vendor handle as shortlisted.
type Favorite struct {
	VendorHandle string    `json:"vendor_handle"`
	AddedAt      time.Time `json:"added_at"`
}

// Vendor is a catalog entry served by the external backend. The
// catalog is read-only from this layer's perspective.
type Vendor struct {
	Handle      string  `json:"handle"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Location    string  `json:"location,omitempty"`
	PriceRange  string  `json:"price_range,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// WeddingInfo is the singleton wedding profile. Last write wins; no
// history is kept.
type WeddingInfo struct {
	Partner1    string    `json:"partner1"`
	Partner2    string    `json:"partner2"`
	WeddingDate time.Time `json:"wedding_date"`
	Location    string    `json:"location"`
}
