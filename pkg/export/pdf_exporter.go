package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// CalendarDocument describes one printable month grid.
type CalendarDocument struct {
	Title    string
	Weekdays []string
	Weeks    [][]CalendarCell
}

// CalendarCell is one day box: day-of-month header, stacked entry
// labels and a hidden-entry count when the box overflowed.
type CalendarCell struct {
	Day     string
	Muted   bool
	Entries []string
	Hidden  int
}

// PDFExporter renders printable documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderTable creates a PDF document with an optional title and table body.
func (e *PDFExporter) RenderTable(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCalendar creates a landscape month-grid PDF mirroring the
// calendar view: one row per week, one box per day.
func (e *PDFExporter) RenderCalendar(doc CalendarDocument) ([]byte, error) {
	if len(doc.Weeks) == 0 {
		return nil, fmt.Errorf("calendar pdf requires at least one week")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 12, 8)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	weekdays := doc.Weekdays
	if len(weekdays) != 7 {
		weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	}

	const colWidth = 281.0 / 7.0
	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Arial", "B", 9)
	for _, name := range weekdays {
		pdf.CellFormat(colWidth, 7, name, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	rowHeight := (190.0 - 22.0) / float64(len(doc.Weeks))
	if rowHeight < 18 {
		rowHeight = 18
	}

	for _, week := range doc.Weeks {
		top := pdf.GetY()
		for col := 0; col < 7; col++ {
			left := 8.0 + float64(col)*colWidth
			pdf.Rect(left, top, colWidth, rowHeight, "D")
			if col >= len(week) {
				continue
			}
			cell := week[col]

			pdf.SetXY(left+1, top+1)
			if cell.Muted {
				pdf.SetTextColor(150, 150, 150)
			} else {
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.SetFont("Arial", "B", 8)
			pdf.CellFormat(colWidth-2, 4, cell.Day, "", 0, "R", false, 0, "")

			pdf.SetFont("Arial", "", 7)
			maxLines := int((rowHeight - 6) / 3.5)
			for i, entry := range cell.Entries {
				if i >= maxLines {
					break
				}
				pdf.SetXY(left+1, top+5.5+float64(i)*3.5)
				pdf.CellFormat(colWidth-2, 3.5, truncate(entry, 30), "", 0, "L", false, 0, "")
			}
			if cell.Hidden > 0 {
				pdf.SetXY(left+1, top+rowHeight-4)
				pdf.SetFont("Arial", "I", 7)
				pdf.CellFormat(colWidth-2, 3.5, fmt.Sprintf("+%d more", cell.Hidden), "", 0, "L", false, 0, "")
				pdf.SetFont("Arial", "", 7)
			}
		}
		pdf.SetY(top + rowHeight)
	}
	pdf.SetTextColor(0, 0, 0)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render calendar pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
