// Package planner is the composition root of the planning state: it
// owns the managers, caches their snapshots for the consuming
// surface, and holds the wedding profile. Consumers never touch
// storage directly and managers never talk to each other; every
// mutation flows through here.
package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"tietheknot/internal/booking"
	"tietheknot/internal/budget"
	"tietheknot/internal/favorites"
	"tietheknot/internal/guest"
	"tietheknot/internal/models"
	"tietheknot/internal/notify"
	"tietheknot/internal/quotes"
	"tietheknot/internal/storage"
	"tietheknot/internal/vendor"
)

// Backend is the slice of the external API the planner consumes.
type Backend interface {
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	SubmitQuoteRequest(ctx context.Context, q models.Quotation) (models.Quotation, error)
	FetchQuoteStatuses(ctx context.Context) ([]models.Quotation, error)
	SubmitBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	FetchBookings(ctx context.Context) ([]models.Booking, error)
}

var _ Backend = (*vendor.Client)(nil)

// Planner aggregates the managers and caches their state. Construct
// one per profile; tests get isolated instances instead of globals.
type Planner struct {
	store   *storage.Store
	backend Backend
	log     zerolog.Logger

	Guests    *guest.Manager
	Budget    *budget.Manager
	Bookings  *booking.Manager
	Favorites *favorites.Manager
	Quotes    *quotes.Manager

	info       models.WeddingInfo
	catalog    []models.Vendor
	guestCache []models.Guest
	favCache   []models.Favorite
	quoteCache []models.Quotation
}

// New builds the planner, reading every slice from storage exactly once.
func New(store *storage.Store, backend Backend, notifier notify.Notifier, alerts budget.AlertConfig, log zerolog.Logger) *Planner {
	p := &Planner{
		store:     store,
		backend:   backend,
		log:       log.With().Str("component", "planner").Logger(),
		Guests:    guest.NewManager(store, notifier, log),
		Budget:    budget.NewManager(store, alerts, log),
		Bookings:  booking.NewManager(store, log),
		Favorites: favorites.NewManager(store, log),
		Quotes:    quotes.NewManager(store, log),
		info:      storage.Read(store, storage.KeyWeddingInfo, models.WeddingInfo{}),
	}
	p.guestCache = p.Guests.List()
	p.favCache = p.Favorites.List()
	p.quoteCache = p.Quotes.List()
	return p
}

// WeddingInfo returns the current wedding profile.
func (p *Planner) WeddingInfo() models.WeddingInfo {
	return p.info
}

// SetWeddingInfo replaces the wedding profile. Last write wins.
func (p *Planner) SetWeddingInfo(info models.WeddingInfo) error {
	if err := storage.Write(p.store, storage.KeyWeddingInfo, info); err != nil {
		return err
	}
	p.info = info
	return nil
}

// DaysUntilWedding is the dashboard countdown, in whole days rounded
// up. Zero when the date has passed or was never set.
func (p *Planner) DaysUntilWedding(now time.Time) int {
	if p.info.WeddingDate.IsZero() || !p.info.WeddingDate.After(now) {
		return 0
	}
	return int(math.Ceil(p.info.WeddingDate.Sub(now).Hours() / 24))
}

// GuestList returns the cached guest snapshot.
func (p *Planner) GuestList() []models.Guest {
	return p.guestCache
}

// AddGuest delegates to the guest manager and refreshes the cache.
func (p *Planner) AddGuest(input guest.Input) (models.Guest, error) {
	g, err := p.Guests.Add(input)
	if err != nil {
		return models.Guest{}, err
	}
	p.guestCache = p.Guests.List()
	return g, nil
}

// UpdateGuest delegates to the guest manager and refreshes the cache.
func (p *Planner) UpdateGuest(id string, update guest.Update) (models.Guest, error) {
	g, err := p.Guests.UpdateGuest(id, update)
	if err != nil {
		return models.Guest{}, err
	}
	p.guestCache = p.Guests.List()
	return g, nil
}

// DeleteGuest delegates to the guest manager and refreshes the cache.
func (p *Planner) DeleteGuest(id string) error {
	if err := p.Guests.Delete(id); err != nil {
		return err
	}
	p.guestCache = p.Guests.List()
	return nil
}

// RefreshGuests re-pulls the guest snapshot. Escape hatch for callers
// that mutate through a path the planner does not wrap, like a bulk
// import.
func (p *Planner) RefreshGuests() {
	p.guestCache = p.Guests.List()
}

// RefreshBudget re-pulls the budget snapshots; same escape hatch as
// RefreshGuests.
func (p *Planner) RefreshBudget() {
	// The budget manager derives everything on read; re-pulling is a
	// no-op hook kept for symmetry with the consuming surface.
}

// FavoritesList returns the cached favorites snapshot.
func (p *Planner) FavoritesList() []models.Favorite {
	return p.favCache
}

// ToggleFavorite flips membership and refreshes the cache with the
// manager's returned snapshot.
func (p *Planner) ToggleFavorite(vendorHandle string) ([]models.Favorite, error) {
	list, err := p.Favorites.Toggle(vendorHandle)
	if err != nil {
		return nil, err
	}
	p.favCache = list
	return list, nil
}

// FavoriteVendors joins the favorites against the last fetched
// catalog. Stale handles are dropped by the manager.
func (p *Planner) FavoriteVendors() []models.Vendor {
	return p.Favorites.FavoriteVendors(p.catalog)
}

// Catalog returns the last fetched vendor catalog.
func (p *Planner) Catalog() []models.Vendor {
	return p.catalog
}

// RefreshCatalog fetches the vendor catalog from the backend.
func (p *Planner) RefreshCatalog(ctx context.Context) error {
	catalog, err := p.backend.ListVendors(ctx)
	if err != nil {
		return err
	}
	p.catalog = catalog
	return nil
}

// Quotations returns the cached quotations snapshot.
func (p *Planner) Quotations() []models.Quotation {
	return p.quoteCache
}

// RequestQuote records the request locally, then persists it on the
// backend. The local record is kept even if the backend call fails;
// the next reconcile sorts out drift.
func (p *Planner) RequestQuote(ctx context.Context, input models.QuotationInput) error {
	list, err := p.Quotes.Add(input)
	if err != nil {
		return err
	}
	p.quoteCache = list

	created := list[len(list)-1]
	if _, err := p.backend.SubmitQuoteRequest(ctx, created); err != nil {
		return fmt.Errorf("quote saved locally, backend rejected it: %w", err)
	}
	return nil
}

// RequestBooking drafts the booking locally and submits it to the
// backend, which owns confirmation.
func (p *Planner) RequestBooking(ctx context.Context, vendorID string, date time.Time, slot models.Slot, contact models.BookingContact, message string) (models.Booking, error) {
	b, err := p.Bookings.Create(vendorID, date, slot, contact, message)
	if err != nil {
		return models.Booking{}, err
	}
	if _, err := p.backend.SubmitBooking(ctx, b); err != nil {
		return b, fmt.Errorf("booking saved locally, backend rejected it: %w", err)
	}
	return b, nil
}

// Sync reconciles the local quote and booking mirrors with the
// backend and refreshes the catalog. Each failure is reported; none
// is retried.
func (p *Planner) Sync(ctx context.Context) error {
	if err := p.RefreshCatalog(ctx); err != nil {
		return err
	}

	remoteQuotes, err := p.backend.FetchQuoteStatuses(ctx)
	if err != nil {
		return err
	}
	if err := p.Quotes.Reconcile(remoteQuotes); err != nil {
		return err
	}
	p.quoteCache = p.Quotes.List()

	remoteBookings, err := p.backend.FetchBookings(ctx)
	if err != nil {
		return err
	}
	if err := p.Bookings.Reconcile(remoteBookings); err != nil {
		return err
	}

	p.log.Info().
		Int("vendors", len(p.catalog)).
		Int("quotations", len(p.quoteCache)).
		Int("bookings", len(remoteBookings)).
		Msg("Synced with vendor backend")
	return nil
}

// DashboardSummary is the front-page snapshot: countdown, RSVP funnel
// and budget aggregates.
type DashboardSummary struct {
	DaysUntilWedding int
	GuestStats       models.GuestStats
	RSVPProgress     models.RSVPProgress
	Budget           models.BudgetSummary
}

// Dashboard recomputes the summary from current state.
func (p *Planner) Dashboard(now time.Time) DashboardSummary {
	return DashboardSummary{
		DaysUntilWedding: p.DaysUntilWedding(now),
		GuestStats:       p.Guests.Stats(),
		RSVPProgress:     p.Guests.RSVPProgress(),
		Budget:           p.Budget.Summary(),
	}
}
