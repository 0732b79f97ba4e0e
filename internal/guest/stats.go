package guest

import (
	"math"

	"tietheknot/internal/models"
)

// Stats recomputes the dashboard statistics from the current guest
// list on every call; nothing here is cached across mutations.
func (m *Manager) Stats() models.GuestStats {
	stats := models.GuestStats{
		BySide: map[models.Side]models.SideBreakdown{},
		ByTier: map[models.PriorityTier]int{},
	}
	for _, g := range m.guests {
		stats.Total++
		stats.TotalWithPlusOnes += g.GuestCount

		side := stats.BySide[g.Side]
		side.Guests++
		side.Headcount += g.GuestCount
		if g.RSVPStatus == models.RSVPAttending {
			side.Attending++
		}
		stats.BySide[g.Side] = side

		stats.ByTier[g.PriorityTier]++
	}
	return stats
}

// RSVPProgress buckets every guest record into exactly one of
// attending, pending (draft or invited), declined or no-response, so
// the counts always sum to the record total.
func (m *Manager) RSVPProgress() models.RSVPProgress {
	var p models.RSVPProgress
	for _, g := range m.guests {
		switch g.RSVPStatus {
		case models.RSVPAttending:
			p.Attending++
		case models.RSVPDeclined:
			p.Declined++
		case models.RSVPNoResponse:
			p.NoResponse++
		default:
			p.Pending++
		}
	}

	total := p.Attending + p.Pending + p.Declined + p.NoResponse
	if total == 0 {
		return p
	}
	p.AttendingPercent = percent(p.Attending, total)
	p.PendingPercent = percent(p.Pending, total)
	p.DeclinedPercent = percent(p.Declined, total)
	p.NoResponsePercent = percent(p.NoResponse, total)
	return p
}

// CountBySide sums party sizes for one side regardless of RSVP
// status; a declined guest still counts toward side totals.
func (m *Manager) CountBySide(side models.Side) int {
	total := 0
	for _, g := range m.guests {
		if g.Side == side {
			total += g.GuestCount
		}
	}
	return total
}

func percent(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*10000) / 100
}
