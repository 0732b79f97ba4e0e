package guest

import (
	"io"
	"strconv"

	"tietheknot/internal/export"
	"tietheknot/internal/models"
)

// CSVHeader is the documented, fixed column order of the guest export.
var CSVHeader = []string{"name", "email", "phone", "side", "rsvpStatus", "priorityTier", "guestCount", "notes"}

// ExportCSV renders the guest list as CSV. With attendingOnly set,
// only guests with a confirmed RSVP are included.
func (m *Manager) ExportCSV(attendingOnly bool) (string, error) {
	return export.RenderCSV(CSVHeader, m.exportRows(attendingOnly))
}

// ExportPDF renders the same rows as a printable table.
func (m *Manager) ExportPDF(w io.Writer, attendingOnly bool) error {
	title := "Guest List"
	if attendingOnly {
		title = "Guest List (attending)"
	}
	return export.WritePDF(w, title, CSVHeader, m.exportRows(attendingOnly))
}

func (m *Manager) exportRows(attendingOnly bool) [][]string {
	rows := make([][]string, 0, len(m.guests))
	for _, g := range m.guests {
		if attendingOnly && g.RSVPStatus != models.RSVPAttending {
			continue
		}
		rows = append(rows, []string{
			g.Name,
			g.Email,
			g.Phone,
			string(g.Side),
			string(g.RSVPStatus),
			string(g.PriorityTier),
			strconv.Itoa(g.GuestCount),
			g.Notes,
		})
	}
	return rows
}
