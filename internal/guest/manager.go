// Package guest owns the guest list and household grouping: CRUD,
// derived statistics, RSVP progress, reminder targeting and export.
// It is the sole writer of the guests and guest-households keys.
package guest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tietheknot/internal/models"
	"tietheknot/internal/notify"
	"tietheknot/internal/storage"
)

var (
	ErrNotFound     = errors.New("guest not found")
	ErrInvalidGuest = errors.New("invalid guest")
)

// Manager is the single writer of the guest collections. All
// mutations replace the whole persisted collection.
type Manager struct {
	store      *storage.Store
	notifier   notify.Notifier
	log        zerolog.Logger
	guests     []models.Guest
	households []models.Household
}

// NewManager loads the guest collections and wires the reminder channel.
func NewManager(store *storage.Store, notifier notify.Notifier, log zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		notifier:   notifier,
		log:        log.With().Str("component", "guests").Logger(),
		guests:     storage.Read(store, storage.KeyGuests, []models.Guest{}),
		households: storage.Read(store, storage.KeyGuestHouseholds, []models.Household{}),
	}
}

// Input is the payload for creating a guest.
type Input struct {
	Name               string
	Email              string
	Phone              string
	Side               models.Side
	RSVPStatus         models.RSVPStatus
	PriorityTier       models.PriorityTier
	RelationshipLabels []string
	HouseholdID        *string
	GuestCount         int
	Notes              string
}

// Update is a partial guest update; nil fields are left unchanged.
type Update struct {
	Name               *string
	Email              *string
	Phone              *string
	Side               *models.Side
	RSVPStatus         *models.RSVPStatus
	PriorityTier       *models.PriorityTier
	RelationshipLabels *[]string
	HouseholdID        **string
	GuestCount         *int
	ThankYouSent       *bool
	Notes              *string
}

// List returns a snapshot of all guests.
func (m *Manager) List() []models.Guest {
	out := make([]models.Guest, len(m.guests))
	copy(out, m.guests)
	return out
}

// Get retrieves a guest by id.
func (m *Manager) Get(id string) (models.Guest, error) {
	for _, g := range m.guests {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Guest{}, ErrNotFound
}

// Add creates a guest. A zero GuestCount defaults to a party of one;
// a negative one is rejected.
func (m *Manager) Add(input Input) (models.Guest, error) {
	if input.Name == "" {
		return models.Guest{}, fmt.Errorf("%w: name is required", ErrInvalidGuest)
	}
	if input.GuestCount < 0 {
		return models.Guest{}, fmt.Errorf("%w: guest count must be at least 1", ErrInvalidGuest)
	}
	if input.GuestCount == 0 {
		input.GuestCount = 1
	}

	now := time.Now().UTC()
	g := models.Guest{
		ID:                 uuid.NewString(),
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Side:               input.Side,
		RSVPStatus:         input.RSVPStatus,
		PriorityTier:       input.PriorityTier,
		RelationshipLabels: input.RelationshipLabels,
		HouseholdID:        input.HouseholdID,
		GuestCount:         input.GuestCount,
		Notes:              input.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if g.Side == "" {
		g.Side = models.SideMutual
	}
	if g.RSVPStatus == "" {
		g.RSVPStatus = models.RSVPDraft
	}
	if g.PriorityTier == "" {
		g.PriorityTier = models.Tier1
	}
	if g.RSVPStatus == models.RSVPInvited {
		g.InvitedAt = &now
	}

	m.guests = append(m.guests, g)
	if err := m.persistGuests(); err != nil {
		return models.Guest{}, err
	}
	return g, nil
}

// UpdateGuest applies a partial update. A missing id returns ErrNotFound.
func (m *Manager) UpdateGuest(id string, update Update) (models.Guest, error) {
	for i, g := range m.guests {
		if g.ID != id {
			continue
		}
		if update.Name != nil {
			g.Name = *update.Name
		}
		if update.Email != nil {
			g.Email = *update.Email
		}
		if update.Phone != nil {
			g.Phone = *update.Phone
		}
		if update.Side != nil {
			g.Side = *update.Side
		}
		if update.RSVPStatus != nil && *update.RSVPStatus != g.RSVPStatus {
			g.RSVPStatus = *update.RSVPStatus
			now := time.Now().UTC()
			switch g.RSVPStatus {
			case models.RSVPAttending, models.RSVPDeclined, models.RSVPNoResponse:
				g.RespondedAt = &now
			case models.RSVPInvited:
				if g.InvitedAt == nil {
					g.InvitedAt = &now
				}
			}
		}
		if update.PriorityTier != nil {
			g.PriorityTier = *update.PriorityTier
		}
		if update.RelationshipLabels != nil {
			g.RelationshipLabels = *update.RelationshipLabels
		}
		if update.HouseholdID != nil {
			g.HouseholdID = *update.HouseholdID
		}
		if update.GuestCount != nil {
			if *update.GuestCount < 1 {
				return models.Guest{}, fmt.Errorf("%w: guest count must be at least 1", ErrInvalidGuest)
			}
			g.GuestCount = *update.GuestCount
		}
		if update.ThankYouSent != nil {
			g.ThankYouSent = *update.ThankYouSent
			if g.ThankYouSent && g.ThankYouSentAt == nil {
				now := time.Now().UTC()
				g.ThankYouSentAt = &now
			}
		}
		if update.Notes != nil {
			g.Notes = *update.Notes
		}
		g.UpdatedAt = time.Now().UTC()

		m.guests[i] = g
		if err := m.persistGuests(); err != nil {
			return models.Guest{}, err
		}
		return g, nil
	}
	return models.Guest{}, ErrNotFound
}

// Delete removes a guest and drops it from its household, if any.
func (m *Manager) Delete(id string) error {
	for i, g := range m.guests {
		if g.ID != id {
			continue
		}
		m.guests = append(m.guests[:i], m.guests[i+1:]...)
		if err := m.persistGuests(); err != nil {
			return err
		}
		if g.HouseholdID != nil {
			m.removeHouseholdMember(*g.HouseholdID, id)
		}
		return nil
	}
	return ErrNotFound
}

// MarkInvited transitions a draft guest to invited and stamps InvitedAt.
func (m *Manager) MarkInvited(id string) (models.Guest, error) {
	status := models.RSVPInvited
	return m.UpdateGuest(id, Update{RSVPStatus: &status})
}

// MarkThankYouSent flags the guest's thank-you note as sent.
func (m *Manager) MarkThankYouSent(id string) (models.Guest, error) {
	sent := true
	return m.UpdateGuest(id, Update{ThankYouSent: &sent})
}

// NeedingReminders returns invited or unresponsive guests whose
// invitation went out on or before the deadline. Draft guests were
// never invited and are excluded; only already-invited stragglers are
// tracked.
func (m *Manager) NeedingReminders(deadline time.Time) []models.Guest {
	var out []models.Guest
	for _, g := range m.guests {
		if g.RSVPStatus != models.RSVPInvited && g.RSVPStatus != models.RSVPNoResponse {
			continue
		}
		if g.InvitedAt == nil || g.InvitedAt.After(deadline) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SendReminder dispatches one reminder through the configured channel
// and stamps LastReminderSentAt only when delivery succeeded.
func (m *Manager) SendReminder(ctx context.Context, id, message string) error {
	g, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := m.notifier.SendReminder(ctx, g, message); err != nil {
		return err
	}

	now := time.Now().UTC()
	for i := range m.guests {
		if m.guests[i].ID == id {
			m.guests[i].LastReminderSentAt = &now
			m.guests[i].UpdatedAt = now
			break
		}
	}
	m.log.Info().Str("guest_id", id).Msg("Reminder sent")
	return m.persistGuests()
}

// SendReminders dispatches reminders to each id in turn. It keeps
// going past per-guest failures and returns the first error seen.
func (m *Manager) SendReminders(ctx context.Context, ids []string, message string) error {
	var firstErr error
	for _, id := range ids {
		if err := m.SendReminder(ctx, id, message); err != nil {
			m.log.Error().Err(err).Str("guest_id", id).Msg("Failed to send reminder")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SendInvitation delivers the invitation and marks the guest invited
// on success.
func (m *Manager) SendInvitation(ctx context.Context, id string, invite notify.Invite) error {
	g, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := m.notifier.SendInvitation(ctx, g, invite); err != nil {
		return err
	}
	if _, err := m.MarkInvited(id); err != nil {
		return err
	}
	return nil
}

func (m *Manager) persistGuests() error {
	return storage.Write(m.store, storage.KeyGuests, m.guests)
}
