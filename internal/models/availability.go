package models

// AvailabilitySlot declares a window during which a teacher may be
// scheduled. A teacher with no windows on a day is treated as fully
// available that day.
type AvailabilitySlot struct {
	TeacherID string `json:"teacher_id"`
	Day       int    `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
}
