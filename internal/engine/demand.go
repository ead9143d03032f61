package engine

import (
	"sort"

	"github.com/PMithila/Group-PPA/internal/models"
)

// Demand is the normalized scheduling requirement of one subject.
type Demand struct {
	SubjectID string
	Name      string
	TeacherID string // empty when unbound
	Periods   int
}

// Demands normalizes subject rows into the allocators' work list: rows
// without an id are skipped, the name defaults to the id, periods below 1
// clamp to 1. The list is ordered by descending periods with input order
// breaking ties; both allocators depend on this order for determinism.
func Demands(subjects []models.Subject) []Demand {
	demands := make([]Demand, 0, len(subjects))
	for _, subject := range subjects {
		if subject.ID == "" {
			continue
		}
		demand := Demand{
			SubjectID: subject.ID,
			Name:      subject.Name,
			Periods:   subject.PeriodsPerWeek,
		}
		if demand.Name == "" {
			demand.Name = subject.ID
		}
		if subject.TeacherID != nil {
			demand.TeacherID = *subject.TeacherID
		}
		if demand.Periods < 1 {
			demand.Periods = 1
		}
		demands = append(demands, demand)
	}

	sort.SliceStable(demands, func(i, j int) bool {
		return demands[i].Periods > demands[j].Periods
	})

	return demands
}
