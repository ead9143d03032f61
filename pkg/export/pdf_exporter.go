package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/PMithila/Group-PPA/internal/models"
)

// PDFExporter renders a generated timetable into a printable PDF, one
// table section per scheduled day.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderTimetable creates a PDF document listing events grouped by day.
func (e *PDFExporter) RenderTimetable(events []models.ScheduledEvent, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	headers := []string{"Start", "End", "Subject", "Teacher", "Room"}
	colWidth := 190.0 / float64(len(headers))

	byDay := make(map[int][]models.ScheduledEvent)
	days := make([]int, 0)
	for _, event := range events {
		if _, seen := byDay[event.Day]; !seen {
			days = append(days, event.Day)
		}
		byDay[event.Day] = append(byDay[event.Day], event)
	}
	sort.Ints(days)

	for _, day := range days {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 9, DayName(day), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 10)
		for _, header := range headers {
			pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		rows := byDay[day]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Start < rows[j].Start })

		pdf.SetFont("Arial", "", 9)
		for _, event := range rows {
			teacher := ""
			if event.TeacherID != nil {
				teacher = *event.TeacherID
			}
			for _, value := range []string{event.Start, event.End, event.Title, teacher, event.Room} {
				pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
