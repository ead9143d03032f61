package dto

import "github.com/PMithila/Group-PPA/internal/models"

// Algorithm selector values.
const (
	AlgorithmHeuristic = "heuristic"
	AlgorithmILP       = "ilp"
)

// TimetableConfig overrides the default weekly grid.
type TimetableConfig struct {
	Days        []int  `json:"days" validate:"omitempty,min=1,dive,min=0,max=6"`
	Start       string `json:"start"`
	End         string `json:"end"`
	SlotMinutes int    `json:"slot_minutes" validate:"omitempty,min=1"`
}

// GenerateScheduleRequest carries the input tables and run parameters.
type GenerateScheduleRequest struct {
	Teachers     []models.Teacher          `json:"teachers"`
	Subjects     []models.Subject          `json:"subjects"`
	Rooms        []models.Room             `json:"rooms"`
	Availability []models.AvailabilitySlot `json:"availability"`

	Config           *TimetableConfig `json:"config,omitempty"`
	Algorithm        string           `json:"algorithm" validate:"omitempty,oneof=heuristic ilp"`
	TimeLimitSeconds int              `json:"time_limit_seconds" validate:"omitempty,min=1"`
}

// SubjectCoverage compares requested periods against emitted events for a
// subject. Scheduled below Requested marks an under-scheduled subject.
type SubjectCoverage struct {
	Requested int `json:"requested"`
	Scheduled int `json:"scheduled"`
}

// GenerateScheduleResponse returns the generated events with coverage
// accounting.
type GenerateScheduleResponse struct {
	RunID     string                     `json:"run_id"`
	Algorithm string                     `json:"algorithm"`
	Events    []models.ScheduledEvent    `json:"events"`
	Coverage  map[string]SubjectCoverage `json:"coverage"`
	Shortfall int                        `json:"shortfall"`
}
