package models

// ScheduledEvent is one placed occurrence of a subject. IDs are derived
// from subject, day and slot (plus room for solver output), so identical
// inputs reproduce identical ids.
type ScheduledEvent struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	SubjectID string  `json:"subject_id"`
	TeacherID *string `json:"teacher_id"`
	Day       int     `json:"day"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Room      string  `json:"room"`
}
