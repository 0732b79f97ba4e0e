// Package notify delivers RSVP reminders and invitations to guests.
// The guest manager only ever talks to the Notifier interface; the
// mock implementation is the default so nothing real is sent unless a
// channel is explicitly configured.
package notify

import (
	"context"

	"tietheknot/internal/models"
)

// Invite carries the wedding details an invitation message needs.
type Invite struct {
	Partner1    string
	Partner2    string
	WeddingDate string
	Location    string
}

// Notifier sends messages to a single guest.
type Notifier interface {
	SendReminder(ctx context.Context, guest models.Guest, message string) error
	SendInvitation(ctx context.Context, guest models.Guest, invite Invite) error
}
