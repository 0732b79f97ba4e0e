package notify

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"tietheknot/internal/models"
)

// WhatsAppConfig configures the WhatsApp reminder channel.
type WhatsAppConfig struct {
	DataDir string
}

// WhatsAppNotifier delivers reminders and invitations over WhatsApp.
// Guests without a phone number cannot be reached on this channel.
type WhatsAppNotifier struct {
	client *whatsmeow.Client
	cfg    *WhatsAppConfig
	log    zerolog.Logger
}

// NewWhatsAppNotifier creates a WhatsApp notifier backed by a local
// sqlite device store.
func NewWhatsAppNotifier(cfg *WhatsAppConfig) (*WhatsAppNotifier, error) {
	ctx := context.Background()
	logger := zerolog.New(os.Stdout).With().Str("component", "notify-whatsapp").Logger()

	// Use nil logger - sqlstore will use a no-op logger by default
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", cfg.DataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)

	n := &WhatsAppNotifier{
		client: client,
		cfg:    cfg,
		log:    logger,
	}
	client.AddEventHandler(n.eventHandler)
	return n, nil
}

// NormalizePhoneNumber normalizes phone numbers to international format.
// National numbers with a leading zero are converted to country-code form.
func NormalizePhoneNumber(phoneNumber string) string {
	for _, ch := range []string{"+", " ", "-", "(", ")"} {
		phoneNumber = strings.ReplaceAll(phoneNumber, ch, "")
	}

	// National format 05XXXXXXXX -> 9725XXXXXXXX
	if strings.HasPrefix(phoneNumber, "0") && len(phoneNumber) == 10 {
		phoneNumber = "972" + phoneNumber[1:]
	}
	// Country code followed by a stray national zero
	if strings.HasPrefix(phoneNumber, "9720") {
		phoneNumber = "972" + phoneNumber[4:]
	}

	return phoneNumber
}

// Connect connects to WhatsApp, printing a pairing QR code when the
// device has not been linked yet.
func (n *WhatsAppNotifier) Connect() error {
	if n.client.Store.ID == nil {
		qrChan, _ := n.client.GetQRChannel(context.Background())
		if err := n.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		for evt := range qrChan {
			if evt.Event == "code" {
				q, err := qrcode.New(evt.Code, qrcode.Medium)
				if err != nil {
					fmt.Printf("QR Code: %s\n", evt.Code)
					fmt.Println("Please scan this QR code with WhatsApp to connect.")
				} else {
					fmt.Println("\n" + q.ToSmallString(false))
					fmt.Println("Scan the QR code above with WhatsApp (Settings > Linked Devices > Link a Device).")
				}
			} else {
				n.log.Info().Str("event", evt.Event).Msg("Login event")
			}
		}
		return nil
	}
	if err := n.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return nil
}

// Disconnect disconnects from WhatsApp
func (n *WhatsAppNotifier) Disconnect() {
	n.client.Disconnect()
}

func (n *WhatsAppNotifier) SendReminder(ctx context.Context, guest models.Guest, message string) error {
	if guest.Phone == "" {
		return fmt.Errorf("guest %s has no phone number", guest.Name)
	}
	if err := n.send(ctx, guest.Phone, message); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// SendInvitation sends a wedding invitation to a guest
func (n *WhatsAppNotifier) SendInvitation(ctx context.Context, guest models.Guest, invite Invite) error {
	if guest.Phone == "" {
		return fmt.Errorf("guest %s has no phone number", guest.Name)
	}

	message := fmt.Sprintf(
		"🎉 *Wedding Invitation*\n\n"+
			"Dear %s,\n\n"+
			"You are cordially invited to celebrate the wedding of\n\n"+
			"*%s* & *%s*\n\n"+
			"📅 Date: %s\n"+
			"📍 Location: %s\n\n"+
			"Please RSVP on your invitation page.",
		guest.Name, invite.Partner1, invite.Partner2, invite.WeddingDate, invite.Location,
	)

	if err := n.send(ctx, guest.Phone, message); err != nil {
		return fmt.Errorf("failed to send invitation: %w", err)
	}
	return nil
}

// send verifies the number is on WhatsApp and delivers a text message.
func (n *WhatsAppNotifier) send(ctx context.Context, phoneNumber, message string) error {
	phoneNumber = NormalizePhoneNumber(phoneNumber)

	resp, err := n.client.IsOnWhatsApp(ctx, []string{phoneNumber})
	if err != nil {
		return fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return fmt.Errorf("number %s is not registered on WhatsApp", phoneNumber)
	}

	// Use the verified JID from WhatsApp; parsing our own is a
	// fallback for older server responses.
	jid := resp[0].JID
	if jid.IsEmpty() {
		if parsed, parseErr := types.ParseJID(phoneNumber); parseErr == nil {
			jid = parsed
		} else {
			jid = types.NewJID(phoneNumber, types.DefaultUserServer)
		}
	}

	n.log.Debug().Str("jid", jid.String()).Str("phone", phoneNumber).Msg("Attempting to send message")

	sent, err := n.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: &message,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	n.log.Info().Str("message_id", sent.ID).Time("timestamp", sent.Timestamp).Msg("Message sent")
	return nil
}

// eventHandler handles incoming WhatsApp events
func (n *WhatsAppNotifier) eventHandler(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		n.log.Info().Msg("Connected to WhatsApp")
	case *events.Disconnected:
		n.log.Info().Msg("Disconnected from WhatsApp")
	case *events.LoggedOut:
		n.log.Info().Msg("Logged out from WhatsApp")
	}
}
