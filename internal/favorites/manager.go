// Package favorites tracks which vendors a couple has shortlisted,
// keyed by vendor handle.
package favorites

import (
	"time"

	"github.com/rs/zerolog"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

// Manager is the single writer of the favorites collection.
type Manager struct {
	store     *storage.Store
	log       zerolog.Logger
	favorites []models.Favorite
}

// NewManager loads the favorites collection from storage.
func NewManager(store *storage.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store:     store,
		log:       log.With().Str("component", "favorites").Logger(),
		favorites: storage.Read(store, storage.KeyFavorites, []models.Favorite{}),
	}
}

// List returns a snapshot of all favorites.
func (m *Manager) List() []models.Favorite {
	out := make([]models.Favorite, len(m.favorites))
	copy(out, m.favorites)
	return out
}

// Toggle flips a vendor's favorite membership and returns the
// post-mutation list so the caller can update its cache without a
// second read.
func (m *Manager) Toggle(vendorHandle string) ([]models.Favorite, error) {
	for i, f := range m.favorites {
		if f.VendorHandle == vendorHandle {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			if err := m.persist(); err != nil {
				return nil, err
			}
			return m.List(), nil
		}
	}

	m.favorites = append(m.favorites, models.Favorite{
		VendorHandle: vendorHandle,
		AddedAt:      time.Now().UTC(),
	})
	if err := m.persist(); err != nil {
		return nil, err
	}
	return m.List(), nil
}

// IsFavorite reports membership for one handle.
func (m *Manager) IsFavorite(vendorHandle string) bool {
	for _, f := range m.favorites {
		if f.VendorHandle == vendorHandle {
			return true
		}
	}
	return false
}

// FavoriteVendors joins favorite handles against the vendor catalog.
// Handles missing from the catalog are silently dropped; a favorite
// may outlive its vendor.
func (m *Manager) FavoriteVendors(catalog []models.Vendor) []models.Vendor {
	byHandle := make(map[string]models.Vendor, len(catalog))
	for _, v := range catalog {
		byHandle[v.Handle] = v
	}

	var out []models.Vendor
	for _, f := range m.favorites {
		if v, ok := byHandle[f.VendorHandle]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (m *Manager) persist() error {
	return storage.Write(m.store, storage.KeyFavorites, m.favorites)
}
