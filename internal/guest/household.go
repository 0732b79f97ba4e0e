package guest

import (
	"errors"

	"github.com/google/uuid"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

var ErrHouseholdNotFound = errors.New("household not found")

// Households returns a snapshot of all households.
func (m *Manager) Households() []models.Household {
	out := make([]models.Household, len(m.households))
	copy(out, m.households)
	return out
}

// AddHousehold creates a grouping label and assigns the given guests
// to it. Unknown member ids are skipped.
func (m *Manager) AddHousehold(name string, memberIDs []string) (models.Household, error) {
	h := models.Household{ID: uuid.NewString(), Name: name}
	for _, id := range memberIDs {
		for i := range m.guests {
			if m.guests[i].ID == id {
				hid := h.ID
				m.guests[i].HouseholdID = &hid
				h.MemberIDs = append(h.MemberIDs, id)
			}
		}
	}

	m.households = append(m.households, h)
	if err := m.persistHouseholds(); err != nil {
		return models.Household{}, err
	}
	if err := m.persistGuests(); err != nil {
		return models.Household{}, err
	}
	return h, nil
}

// RenameHousehold changes the household's display name.
func (m *Manager) RenameHousehold(id, name string) (models.Household, error) {
	for i := range m.households {
		if m.households[i].ID != id {
			continue
		}
		m.households[i].Name = name
		if err := m.persistHouseholds(); err != nil {
			return models.Household{}, err
		}
		return m.households[i], nil
	}
	return models.Household{}, ErrHouseholdNotFound
}

// DeleteHousehold removes the grouping. Member guests survive with
// their household reference cleared; the relation is weak.
func (m *Manager) DeleteHousehold(id string) error {
	for i, h := range m.households {
		if h.ID != id {
			continue
		}
		m.households = append(m.households[:i], m.households[i+1:]...)
		for j := range m.guests {
			if m.guests[j].HouseholdID != nil && *m.guests[j].HouseholdID == id {
				m.guests[j].HouseholdID = nil
			}
		}
		if err := m.persistHouseholds(); err != nil {
			return err
		}
		return m.persistGuests()
	}
	return ErrHouseholdNotFound
}

// AssignToHousehold moves a guest into a household, updating both
// sides of the relation.
func (m *Manager) AssignToHousehold(guestID, householdID string) error {
	found := false
	for i := range m.households {
		if m.households[i].ID == householdID {
			found = true
			break
		}
	}
	if !found {
		return ErrHouseholdNotFound
	}

	for i := range m.guests {
		if m.guests[i].ID != guestID {
			continue
		}
		if m.guests[i].HouseholdID != nil {
			m.removeHouseholdMember(*m.guests[i].HouseholdID, guestID)
		}
		hid := householdID
		m.guests[i].HouseholdID = &hid
		for j := range m.households {
			if m.households[j].ID == householdID {
				m.households[j].MemberIDs = append(m.households[j].MemberIDs, guestID)
			}
		}
		if err := m.persistHouseholds(); err != nil {
			return err
		}
		return m.persistGuests()
	}
	return ErrNotFound
}

func (m *Manager) removeHouseholdMember(householdID, guestID string) {
	for i := range m.households {
		if m.households[i].ID != householdID {
			continue
		}
		members := m.households[i].MemberIDs
		for j, mid := range members {
			if mid == guestID {
				m.households[i].MemberIDs = append(members[:j], members[j+1:]...)
				break
			}
		}
	}
	if err := m.persistHouseholds(); err != nil {
		m.log.Error().Err(err).Str("household_id", householdID).Msg("Failed to persist household membership")
	}
}

func (m *Manager) persistHouseholds() error {
	return storage.Write(m.store, storage.KeyGuestHouseholds, m.households)
}
