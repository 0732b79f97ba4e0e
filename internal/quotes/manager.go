// Package quotes keeps the couple's quote requests. The list is
// append-only from the couple's side; status changes come from the
// vendor workflow on the backend and arrive via Reconcile.
package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

// Manager is the single writer of the quotations collection.
type Manager struct {
	store      *storage.Store
	log        zerolog.Logger
	quotations []models.Quotation
}

// NewManager loads the quotations collection from storage.
func NewManager(store *storage.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		log:        log.With().Str("component", "quotes").Logger(),
		quotations: storage.Read(store, storage.KeyQuotations, []models.Quotation{}),
	}
}

// List returns a snapshot of all quotations.
func (m *Manager) List() []models.Quotation {
	out := make([]models.Quotation, len(m.quotations))
	copy(out, m.quotations)
	return out
}

// Add appends a quote request and returns the post-mutation list.
// There is no de-duplication: asking the same vendor twice is intent,
// not an error.
func (m *Manager) Add(input models.QuotationInput) ([]models.Quotation, error) {
	q := models.Quotation{
		ID:           uuid.NewString(),
		VendorHandle: input.VendorHandle,
		VendorName:   input.VendorName,
		Category:     input.Category,
		Subcategory:  input.Subcategory,
		Budget:       input.Budget,
		GuestCount:   input.GuestCount,
		EventDate:    input.EventDate,
		Notes:        input.Notes,
		Status:       models.QuoteRequested,
		CreatedAt:    time.Now().UTC(),
	}

	m.quotations = append(m.quotations, q)
	if err := m.persist(); err != nil {
		return nil, err
	}
	return m.List(), nil
}

// Reconcile absorbs backend status drift, matched by id. The local
// list is non-authoritative; drift until the next reconcile is
// acceptable.
func (m *Manager) Reconcile(remote []models.Quotation) error {
	statuses := make(map[string]models.QuoteStatus, len(remote))
	for _, r := range remote {
		statuses[r.ID] = r.Status
	}

	changed := false
	for i := range m.quotations {
		if status, ok := statuses[m.quotations[i].ID]; ok && status != m.quotations[i].Status {
			m.quotations[i].Status = status
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return m.persist()
}

func (m *Manager) persist() error {
	return storage.Write(m.store, storage.KeyQuotations, m.quotations)
}
