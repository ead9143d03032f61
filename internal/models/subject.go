package models

// Subject represents a teaching subject row. TeacherID is nil when the
// subject is not bound to a specific instructor. PeriodsPerWeek below 1 is
// clamped to 1 during normalization.
type Subject struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	TeacherID      *string `json:"teacher_id,omitempty"`
	PeriodsPerWeek int     `json:"periods_per_week,omitempty"`
}
