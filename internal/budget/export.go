package budget

import (
	"io"

	"tietheknot/internal/export"
)

// CSVHeader is the documented, fixed column order of the budget export.
var CSVHeader = []string{"category", "description", "amount", "date", "vendor", "paid"}

// ExportCSV renders every expense with its category name as CSV.
func (m *Manager) ExportCSV() (string, error) {
	return export.RenderCSV(CSVHeader, m.exportRows())
}

// ExportPDF renders the same rows as a printable table.
func (m *Manager) ExportPDF(w io.Writer) error {
	return export.WritePDF(w, "Wedding Budget", CSVHeader, m.exportRows())
}

func (m *Manager) exportRows() [][]string {
	names := make(map[string]string, len(m.categories))
	for _, c := range m.categories {
		names[c.ID] = c.Name
	}

	rows := make([][]string, 0, len(m.expenses))
	for _, e := range m.expenses {
		paid := "no"
		if e.IsPaid {
			paid = "yes"
		}
		rows = append(rows, []string{
			names[e.CategoryID],
			e.Description,
			e.Amount.StringFixed(2),
			e.Date.UTC().Format("2006-01-02"),
			e.VendorName,
			paid,
		})
	}
	return rows
}
