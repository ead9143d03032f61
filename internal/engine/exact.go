package engine

import (
	"context"
	"time"

	"github.com/PMithila/Group-PPA/internal/models"
	"github.com/PMithila/Group-PPA/internal/solver"
)

// varIndexer maps (subject, day, slot, room) tuples onto a dense variable
// index and back. Subject-major ordering keeps decode output stable.
type varIndexer struct {
	days     []int
	numSlots int
	numRooms int
}

func (ix varIndexer) count(numSubjects int) int {
	return numSubjects * len(ix.days) * ix.numSlots * ix.numRooms
}

func (ix varIndexer) index(subject, dayPos, slot, room int) int {
	return ((subject*len(ix.days)+dayPos)*ix.numSlots+slot)*ix.numRooms + room
}

func (ix varIndexer) attributes(index int) (subject, dayPos, slot, room int) {
	room = index % ix.numRooms
	index /= ix.numRooms
	slot = index % ix.numSlots
	index /= ix.numSlots
	dayPos = index % len(ix.days)
	subject = index / len(ix.days)
	return
}

// Exact formulates the timetable as a binary program with one variable
// per (subject, day, slot, room) and decodes the solver's incumbent into
// events. Constraints: per-subject coverage equality, teacher and room
// exclusivity, availability fixings. The objective minimizes the number of
// assignments; with the equality coverage constraint it only influences
// solver tie-breaking.
//
// Infeasibility or a time limit hit before any incumbent yields an empty
// event list, not an error.
func Exact(ctx context.Context, grid *Grid, teachers *Index, demands []Demand, roomIDs []string, solv solver.Solver, timeLimit time.Duration) ([]models.ScheduledEvent, error) {
	events := make([]models.ScheduledEvent, 0)
	if len(demands) == 0 {
		return events, nil
	}

	ix := varIndexer{days: grid.Days(), numSlots: grid.NumSlots(), numRooms: len(roomIDs)}
	numVars := ix.count(len(demands))
	if numVars == 0 {
		// No (day, slot, room) space at all; coverage can never be met.
		return events, nil
	}

	m := solver.NewModel(numVars)
	for i := 0; i < numVars; i++ {
		m.SetObjectiveCoeff(i, 1)
	}

	// Coverage: each subject appears exactly Periods times.
	for s, demand := range demands {
		terms := make([]solver.Term, 0, numVars/len(demands))
		for d := range ix.days {
			for t := 0; t < ix.numSlots; t++ {
				for r := range roomIDs {
					terms = append(terms, solver.Term{Var: ix.index(s, d, t, r), Coeff: 1})
				}
			}
		}
		m.Add(terms, solver.EQ, float64(demand.Periods))
	}

	// Teacher exclusivity: one lesson per bound teacher per (day, slot).
	byTeacher := make(map[string][]int)
	for s, demand := range demands {
		if demand.TeacherID != "" {
			byTeacher[demand.TeacherID] = append(byTeacher[demand.TeacherID], s)
		}
	}
	for _, subjects := range byTeacher {
		for d := range ix.days {
			for t := 0; t < ix.numSlots; t++ {
				terms := make([]solver.Term, 0, len(subjects)*len(roomIDs))
				for _, s := range subjects {
					for r := range roomIDs {
						terms = append(terms, solver.Term{Var: ix.index(s, d, t, r), Coeff: 1})
					}
				}
				m.Add(terms, solver.LE, 1)
			}
		}
	}

	// Room exclusivity: one lesson per room per (day, slot).
	for r := range roomIDs {
		for d := range ix.days {
			for t := 0; t < ix.numSlots; t++ {
				terms := make([]solver.Term, 0, len(demands))
				for s := range demands {
					terms = append(terms, solver.Term{Var: ix.index(s, d, t, r), Coeff: 1})
				}
				m.Add(terms, solver.LE, 1)
			}
		}
	}

	// Availability: variables outside a bound teacher's windows are fixed
	// to zero.
	for s, demand := range demands {
		if demand.TeacherID == "" {
			continue
		}
		for d, day := range ix.days {
			for t := 0; t < ix.numSlots; t++ {
				if teachers.IsFree(demand.TeacherID, day, t) {
					continue
				}
				for r := range roomIDs {
					m.FixZero(ix.index(s, d, t, r))
				}
			}
		}
	}

	sol, err := solv.Solve(ctx, m, timeLimit)
	if err != nil {
		return nil, err
	}
	if !sol.Status.HasSolution() {
		return events, nil
	}

	// Decode in dense index order; the solver guarantees the exclusivity
	// constraints, so no post-decode consistency pass is needed.
	for i, value := range sol.Values {
		if value <= 0.5 {
			continue
		}
		s, d, t, r := ix.attributes(i)
		events = append(events, projectEvent(grid, demands[s], ix.days[d], t, roomIDs[r], true))
	}
	return events, nil
}
