package notify

import (
	"context"

	"github.com/rs/zerolog"

	"tietheknot/internal/models"
)

// MockNotifier logs what it would have sent and always succeeds. It
// is the wired default; swapping in a real channel must not touch the
// guest manager.
type MockNotifier struct {
	log zerolog.Logger
}

// NewMockNotifier creates a log-only notifier.
func NewMockNotifier(log zerolog.Logger) *MockNotifier {
	return &MockNotifier{log: log.With().Str("component", "notify-mock").Logger()}
}

func (m *MockNotifier) SendReminder(ctx context.Context, guest models.Guest, message string) error {
	m.log.Info().
		Str("guest_id", guest.ID).
		Str("guest", guest.Name).
		Str("message", message).
		Msg("Mock reminder sent")
	return nil
}

func (m *MockNotifier) SendInvitation(ctx context.Context, guest models.Guest, invite Invite) error {
	m.log.Info().
		Str("guest_id", guest.ID).
		Str("guest", guest.Name).
		Str("wedding_date", invite.WeddingDate).
		Msg("Mock invitation sent")
	return nil
}
