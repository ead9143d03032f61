// Package solver provides a narrow boundary around binary integer
// programming: build a Model, hand it to a Solver, get back a Solution or
// nothing. Backends are swappable without touching constraint
// construction.
package solver

import (
	"context"
	"time"
)

// Sense is the comparison of a linear constraint.
type Sense int

const (
	LE Sense = iota
	EQ
)

// Term is one coefficient on a variable.
type Term struct {
	Var   int
	Coeff float64
}

// Constraint is sum(Terms) <sense> RHS.
type Constraint struct {
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a binary program: all variables are 0/1, the objective is
// minimized.
type Model struct {
	NumVars     int
	Objective   []float64
	Constraints []Constraint
	FixedZero   []bool
}

// NewModel allocates a model with n binary variables and a zero objective.
func NewModel(n int) *Model {
	return &Model{
		NumVars:   n,
		Objective: make([]float64, n),
		FixedZero: make([]bool, n),
	}
}

// SetObjectiveCoeff sets the minimization coefficient of variable i.
func (m *Model) SetObjectiveCoeff(i int, c float64) {
	m.Objective[i] = c
}

// Add appends a constraint. Constraints without terms are ignored.
func (m *Model) Add(terms []Term, sense Sense, rhs float64) {
	if len(terms) == 0 {
		return
	}
	m.Constraints = append(m.Constraints, Constraint{Terms: terms, Sense: sense, RHS: rhs})
}

// FixZero pins variable i to zero.
func (m *Model) FixZero(i int) {
	m.FixedZero[i] = true
}

// Status describes the outcome of a solve.
type Status int

const (
	// StatusOptimal means the solution is proven optimal.
	StatusOptimal Status = iota
	// StatusFeasible means an incumbent was found but optimality was not
	// proven within the time limit.
	StatusFeasible
	// StatusInfeasible means the model has no feasible assignment.
	StatusInfeasible
	// StatusNoSolution means the solver stopped (time limit) before
	// finding any incumbent.
	StatusNoSolution
)

// HasSolution reports whether Values carries a usable assignment.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Solution is the solver's answer. Values is indexed by variable and only
// meaningful when Status.HasSolution().
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
}

// Solver solves a binary program within a time limit. Infeasibility and
// limit exhaustion are reported through Solution.Status, not as errors;
// errors are reserved for backend failures (missing binary, I/O).
type Solver interface {
	Solve(ctx context.Context, m *Model, timeLimit time.Duration) (*Solution, error)
}
