// Package report renders the fleet summary PDF: per-status counts and the
// current status/comment for every cart in registry order. Layout is
// incidental; the data is one consistent ledger read.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ojavier0506-ui/golf-carts/internal/ledger"
)

// Data is everything the report renders.
type Data struct {
	GeneratedAt time.Time
	Counts      []StatusCount
	Carts       []CartRow
}

// StatusCount is one row of the counts table, in status-set order.
type StatusCount struct {
	Status string
	Count  int
}

// CartRow is one row of the fleet table, in registry order.
type CartRow struct {
	Name    string
	Status  string
	Comment string
}

// Build takes a consistent read of the ledger and shapes it for rendering.
func Build(l *ledger.Ledger, now time.Time) Data {
	snapshot := l.GetAll()
	counts := l.CountsByStatus()

	d := Data{GeneratedAt: now}
	for _, s := range l.Statuses().Values() {
		d.Counts = append(d.Counts, StatusCount{Status: s, Count: counts[s]})
	}
	for _, name := range l.Registry().Names() {
		rec := snapshot[name]
		d.Carts = append(d.Carts, CartRow{Name: name, Status: rec.Status, Comment: rec.Comment})
	}
	return d
}

// Render writes the summary PDF to w.
func Render(w io.Writer, d Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SunCarts Fleet Status", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "SunCarts Fleet Status", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+d.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Counts by status", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, c := range d.Counts {
		pdf.CellFormat(90, 6, c.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", c.Count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Fleet", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 6, "Cart", "1", 0, "L", false, 0, "")
	pdf.CellFormat(55, 6, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(105, 6, "Comment", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range d.Carts {
		pdf.CellFormat(30, 6, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, row.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(105, 6, clip(row.Comment, 60), "1", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// clip shortens a comment so a row never wraps the table.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
