package engine

import "github.com/PMithila/Group-PPA/internal/models"

// occupancy tracks what a single heuristic run has placed so far. It is
// local to one call; concurrent runs never share it.
type occupancy struct {
	grid        map[int][]bool
	teacherBusy map[string]map[int]map[int]bool
	roomFree    map[string]map[int]map[int]struct{}
}

func newOccupancy(grid *Grid, rooms *Index, roomIDs []string) *occupancy {
	occ := &occupancy{
		grid:        make(map[int][]bool, len(grid.Days())),
		teacherBusy: make(map[string]map[int]map[int]bool),
		roomFree:    make(map[string]map[int]map[int]struct{}, len(roomIDs)),
	}
	for _, day := range grid.Days() {
		occ.grid[day] = make([]bool, grid.NumSlots())
	}
	for _, roomID := range roomIDs {
		perDay := make(map[int]map[int]struct{}, len(grid.Days()))
		for _, day := range grid.Days() {
			perDay[day] = rooms.FreeSet(roomID, day)
		}
		occ.roomFree[roomID] = perDay
	}
	return occ
}

func (occ *occupancy) teacherTaken(teacherID string, day, slot int) bool {
	days, ok := occ.teacherBusy[teacherID]
	if !ok {
		return false
	}
	return days[day][slot]
}

func (occ *occupancy) reserveTeacher(teacherID string, day, slot int) {
	if occ.teacherBusy[teacherID] == nil {
		occ.teacherBusy[teacherID] = make(map[int]map[int]bool)
	}
	if occ.teacherBusy[teacherID][day] == nil {
		occ.teacherBusy[teacherID][day] = make(map[int]bool)
	}
	occ.teacherBusy[teacherID][day][slot] = true
}

// firstFreeRoom picks the first room in input order with the slot free.
// No load balancing across rooms; this is a deliberate simplicity
// trade-off.
func (occ *occupancy) firstFreeRoom(roomIDs []string, day, slot int) (string, bool) {
	for _, roomID := range roomIDs {
		if _, ok := occ.roomFree[roomID][day][slot]; ok {
			return roomID, true
		}
	}
	return "", false
}

// Heuristic greedily places demands into the grid. Demands are processed
// in the order Demands() produced; for each one, rounds scan candidate
// slots at (round + day) % numSlots so repetitions of a subject spread
// across different times of day. A demand whose repetitions cannot all be
// placed is silently under-scheduled; callers detect the shortfall by
// comparing coverage. No backtracking.
func Heuristic(grid *Grid, teachers *Index, rooms *Index, demands []Demand, roomIDs []string) []models.ScheduledEvent {
	numSlots := grid.NumSlots()
	events := make([]models.ScheduledEvent, 0)
	if numSlots == 0 {
		return events
	}

	occ := newOccupancy(grid, rooms, roomIDs)

	for _, demand := range demands {
		placed := 0
		for round := 0; round < numSlots && placed < demand.Periods; round++ {
			for _, day := range grid.Days() {
				if placed >= demand.Periods {
					break
				}
				slot := (round + day) % numSlots
				if occ.grid[day][slot] {
					continue
				}
				if demand.TeacherID != "" {
					if !teachers.IsFree(demand.TeacherID, day, slot) {
						continue
					}
					if occ.teacherTaken(demand.TeacherID, day, slot) {
						continue
					}
				}
				roomID, ok := occ.firstFreeRoom(roomIDs, day, slot)
				if !ok {
					continue
				}

				occ.grid[day][slot] = true
				if demand.TeacherID != "" {
					occ.reserveTeacher(demand.TeacherID, day, slot)
				}
				delete(occ.roomFree[roomID][day], slot)

				events = append(events, projectEvent(grid, demand, day, slot, roomID, false))
				placed++
			}
		}
	}

	return events
}
