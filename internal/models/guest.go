package models

import "time"

// Side is which partner's social circle a guest belongs to.
type Side string

const (
	SideBride  Side = "bride"
	SideGroom  Side = "groom"
	SideMutual Side = "mutual"
)

// RSVPStatus represents the attendance confirmation status
type RSVPStatus string

const (
	RSVPDraft      RSVPStatus = "draft"
	RSVPInvited    RSVPStatus = "invited"
	RSVPAttending  RSVPStatus = "attending"
	RSVPDeclined   RSVPStatus = "declined"
	RSVPNoResponse RSVPStatus = "no-response"
)

// PriorityTier is the invitation priority bucket.
// Tier1 guests must be invited; tier2 guests are waitlisted.
type PriorityTier string

const (
	Tier1 PriorityTier = "tier1"
	Tier2 PriorityTier = "tier2"
)

// Guest represents a wedding guest or party of guests.
// GuestCount covers the whole party (plus-ones, families) and is always >= 1.
type Guest struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	Side               Side         `json:"side"`
	RSVPStatus         RSVPStatus   `json:"rsvp_status"`
	PriorityTier       PriorityTier `json:"priority_tier"`
	RelationshipLabels []string     `json:"relationship_labels,omitempty"`
	HouseholdID        *string      `json:"household_id,omitempty"`
	GuestCount         int          `json:"guest_count"`
	ThankYouSent       bool         `json:"thank_you_sent"`
	Notes              string       `json:"notes,omitempty"`
	InvitedAt          *time.Time   `json:"invited_at,omitempty"`
	RespondedAt        *time.Time   `json:"responded_at,omitempty"`
	OpenedInviteAt     *time.Time   `json:"opened_invite_at,omitempty"`
	ViewedRSVPAt       *time.Time   `json:"viewed_rsvp_at,omitempty"`
	ThankYouSentAt     *time.Time   `json:"thank_you_sent_at,omitempty"`
	LastReminderSentAt *time.Time   `json:"last_reminder_sent_at,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Household groups guests under a shared label. Deleting a household
// never deletes its members; their HouseholdID is cleared instead.
type Household struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

// SideBreakdown is the per-side slice of the guest statistics.
// Guests counts records; Headcount sums GuestCount regardless of RSVP
// status; Attending counts records that confirmed.
type SideBreakdown struct {
	Guests    int `json:"guests"`
	Headcount int `json:"headcount"`
	Attending int `json:"attending"`
}

// GuestStats summarizes the guest list for the dashboard.
type GuestStats struct {
	Total             int                    `json:"total"`
	TotalWithPlusOnes int                    `json:"total_with_plus_ones"`
	BySide            map[Side]SideBreakdown `json:"by_side"`
	ByTier            map[PriorityTier]int   `json:"by_tier"`
}

// RSVPProgress holds the response funnel. Pending covers draft and
// invited guests. Percentages are computed against guest records,
// never weighted by GuestCount.
type RSVPProgress struct {
	Attending         int     `json:"attending"`
	Pending           int     `json:"pending"`
	Declined          int     `json:"declined"`
	NoResponse        int     `json:"no_response"`
	AttendingPercent  float64 `json:"attending_percent"`
	PendingPercent    float64 `json:"pending_percent"`
	DeclinedPercent   float64 `json:"declined_percent"`
	NoResponsePercent float64 `json:"no_response_percent"`
}
