package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/PMithila/Group-PPA/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName renders a 0=Monday..6=Sunday day index.
func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return fmt.Sprintf("Day %d", day)
	}
	return dayNames[day]
}

// FromEvents projects scheduled events into a dataset ordered by day and
// start time.
func FromEvents(events []models.ScheduledEvent) Dataset {
	sorted := make([]models.ScheduledEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Start < sorted[j].Start
	})

	data := Dataset{Headers: []string{"Day", "Start", "End", "Subject", "Teacher", "Room"}}
	for _, event := range sorted {
		teacher := ""
		if event.TeacherID != nil {
			teacher = *event.TeacherID
		}
		data.Rows = append(data.Rows, map[string]string{
			"Day":     DayName(event.Day),
			"Start":   event.Start,
			"End":     event.End,
			"Subject": event.Title,
			"Teacher": teacher,
			"Room":    event.Room,
		})
	}
	return data
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
