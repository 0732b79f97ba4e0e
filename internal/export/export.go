// Package export renders tabular planning data as CSV or a printable
// PDF. Managers decide the rows and their order; this package only
// formats them.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderCSV returns the header and rows as a CSV document with a
// deterministic column order. The column order is fixed by the
// caller's header; rows must match its length.
func RenderCSV(header []string, rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if len(row) != len(header) {
			return "", fmt.Errorf("csv row has %d columns, header has %d", len(row), len(header))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return sb.String(), nil
}

// WritePDF renders the same rows as a printable table. It is a
// presentation of the CSV data, not a separate data model.
func WritePDF(w io.Writer, title string, header []string, rows [][]string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range header {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("pdf row has %d columns, header has %d", len(row), len(header))
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
