package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PMithila/Group-PPA/internal/models"
)

func heuristicFixture(t *testing.T, cfg Config, teacherIDs []string, windows []Window, roomIDs []string) (*Grid, *Index, *Index) {
	t.Helper()
	grid, err := BuildGrid(cfg)
	require.NoError(t, err)
	teachers := BuildIndex(grid, teacherIDs, windows)
	rooms := BuildIndex(grid, roomIDs, nil)
	return grid, teachers, rooms
}

// assertNoConflicts checks the exclusivity invariant by exhaustive
// pairwise scan: no shared (day, slot, room) and no shared (day, slot)
// for a common teacher.
func assertNoConflicts(t *testing.T, events []models.ScheduledEvent) {
	t.Helper()
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if a.Day == b.Day && a.Start == b.Start {
				assert.NotEqual(t, a.Room, b.Room, "room double-booked at day %d %s", a.Day, a.Start)
				if a.TeacherID != nil && b.TeacherID != nil {
					assert.NotEqual(t, *a.TeacherID, *b.TeacherID, "teacher double-booked at day %d %s", a.Day, a.Start)
				}
			}
		}
	}
}

func TestHeuristicPlacesAllRepetitionsWhenSpaceAllows(t *testing.T) {
	// 3 days x 2 slots = 6 cells, one subject needing 4.
	cfg := Config{Days: []int{0, 1, 2}, Start: "08:00", End: "10:00", SlotMinutes: 60}
	grid, teachers, rooms := heuristicFixture(t, cfg, []string{"T"}, nil, []string{"R"})

	demands := Demands([]models.Subject{{ID: "math", TeacherID: strPtr("T"), PeriodsPerWeek: 4}})
	events := Heuristic(grid, teachers, rooms, demands, []string{"R"})

	require.Len(t, events, 4)
	assertNoConflicts(t, events)
	cells := make(map[string]struct{})
	for _, event := range events {
		cells[fmt.Sprintf("%d-%s", event.Day, event.Start)] = struct{}{}
	}
	assert.Len(t, cells, 4)
}

func TestHeuristicSharedTeacherSingleFreeSlot(t *testing.T) {
	// Teacher only free in slot 0 of day 0; two bound subjects compete.
	cfg := Config{Days: []int{0, 1}, Start: "08:00", End: "10:00", SlotMinutes: 60}
	windows := []Window{
		{EntityID: "T", Day: 0, StartMin: 8 * 60, EndMin: 9 * 60},
		{EntityID: "T", Day: 1, StartMin: 0, EndMin: 0},
	}
	grid, teachers, rooms := heuristicFixture(t, cfg, []string{"T"}, windows, []string{"R"})

	demands := Demands([]models.Subject{
		{ID: "a", TeacherID: strPtr("T"), PeriodsPerWeek: 1},
		{ID: "b", TeacherID: strPtr("T"), PeriodsPerWeek: 1},
	})
	events := Heuristic(grid, teachers, rooms, demands, []string{"R"})

	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Day)
	assert.Equal(t, "08:00", events[0].Start)
}

func TestHeuristicZeroRoomsProducesNoEvents(t *testing.T) {
	cfg := Config{Days: []int{0, 1, 2}, Start: "08:00", End: "12:00", SlotMinutes: 60}
	grid, teachers, rooms := heuristicFixture(t, cfg, []string{"T"}, nil, nil)

	demands := Demands([]models.Subject{{ID: "math", TeacherID: strPtr("T"), PeriodsPerWeek: 3}})
	events := Heuristic(grid, teachers, rooms, demands, nil)

	assert.Empty(t, events)
}

func TestHeuristicNeverExceedsRequestedPeriods(t *testing.T) {
	cfg := Config{Days: []int{0, 1, 2, 3, 4}, Start: "08:00", End: "13:00", SlotMinutes: 60}
	grid, teachers, rooms := heuristicFixture(t, cfg, nil, nil, []string{"R1", "R2"})

	subjects := []models.Subject{
		{ID: "math", PeriodsPerWeek: 5},
		{ID: "eng", PeriodsPerWeek: 3},
		{ID: "art", PeriodsPerWeek: 1},
	}
	events := Heuristic(grid, teachers, rooms, Demands(subjects), []string{"R1", "R2"})

	counts := make(map[string]int)
	for _, event := range events {
		counts[event.SubjectID]++
	}
	assert.LessOrEqual(t, counts["math"], 5)
	assert.LessOrEqual(t, counts["eng"], 3)
	assert.LessOrEqual(t, counts["art"], 1)
	assertNoConflicts(t, events)
}

func TestHeuristicDeterministic(t *testing.T) {
	cfg := Config{Days: []int{0, 1, 2}, Start: "08:00", End: "11:00", SlotMinutes: 60}
	subjects := []models.Subject{
		{ID: "math", TeacherID: strPtr("T1"), PeriodsPerWeek: 3},
		{ID: "eng", TeacherID: strPtr("T2"), PeriodsPerWeek: 2},
	}

	run := func() []models.ScheduledEvent {
		grid, teachers, rooms := heuristicFixture(t, cfg, []string{"T1", "T2"}, nil, []string{"R1", "R2"})
		return Heuristic(grid, teachers, rooms, Demands(subjects), []string{"R1", "R2"})
	}

	assert.Equal(t, run(), run())
}

func TestHeuristicRespectsAvailabilityWindows(t *testing.T) {
	cfg := Config{Days: []int{0, 1}, Start: "08:00", End: "12:00", SlotMinutes: 60}
	windows := []Window{
		{EntityID: "T", Day: 0, StartMin: 10 * 60, EndMin: 12 * 60},
	}
	grid, teachers, rooms := heuristicFixture(t, cfg, []string{"T"}, windows, []string{"R"})

	demands := Demands([]models.Subject{{ID: "math", TeacherID: strPtr("T"), PeriodsPerWeek: 4}})
	events := Heuristic(grid, teachers, rooms, demands, []string{"R"})

	for _, event := range events {
		if event.Day == 0 {
			assert.GreaterOrEqual(t, event.Start, "10:00")
		}
	}
}

func TestHeuristicUnknownBoundTeacherIsNeverPlaced(t *testing.T) {
	cfg := Config{Days: []int{0}, Start: "08:00", End: "12:00", SlotMinutes: 60}
	grid, teachers, rooms := heuristicFixture(t, cfg, []string{"T"}, nil, []string{"R"})

	demands := Demands([]models.Subject{{ID: "math", TeacherID: strPtr("ghost"), PeriodsPerWeek: 2}})
	events := Heuristic(grid, teachers, rooms, demands, []string{"R"})

	assert.Empty(t, events)
}

func TestHeuristicEventIDsAreDeterministic(t *testing.T) {
	cfg := Config{Days: []int{0}, Start: "08:00", End: "09:00", SlotMinutes: 60}
	grid, teachers, rooms := heuristicFixture(t, cfg, nil, nil, []string{"R"})

	events := Heuristic(grid, teachers, rooms, Demands([]models.Subject{{ID: "math", PeriodsPerWeek: 1}}), []string{"R"})

	require.Len(t, events, 1)
	assert.Equal(t, "math_0_0", events[0].ID)
	assert.Equal(t, "math", events[0].Title)
	assert.Nil(t, events[0].TeacherID)
	assert.Equal(t, "R", events[0].Room)
}
