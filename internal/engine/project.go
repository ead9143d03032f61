package engine

import (
	"fmt"

	"github.com/PMithila/Group-PPA/internal/models"
)

// projectEvent maps an internal assignment onto the externally consumable
// event record. The heuristic omits the room from the id (one event per
// subject/day/slot already); the exact allocator includes it to stay
// unique per decision variable.
func projectEvent(grid *Grid, demand Demand, day, slot int, room string, roomInID bool) models.ScheduledEvent {
	id := fmt.Sprintf("%s_%d_%d", demand.SubjectID, day, slot)
	if roomInID {
		id = fmt.Sprintf("%s_%s", id, room)
	}

	var teacherID *string
	if demand.TeacherID != "" {
		tid := demand.TeacherID
		teacherID = &tid
	}

	s := grid.Slot(slot)
	return models.ScheduledEvent{
		ID:        id,
		Title:     demand.Name,
		SubjectID: demand.SubjectID,
		TeacherID: teacherID,
		Day:       day,
		Start:     s.Start(),
		End:       s.End(),
		Room:      room,
	}
}
