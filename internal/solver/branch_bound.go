package solver

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	integralityTol = 1e-6
	simplexTol     = 1e-7
)

// BranchBound is a pure-Go MIP backend: depth-first branch and bound over
// the LP relaxation solved with gonum's simplex. It needs no external
// binary, which keeps small and medium instances self-contained; larger
// models are better served by the CBC backend.
type BranchBound struct{}

// NewBranchBound returns the built-in solver backend.
func NewBranchBound() *BranchBound {
	return &BranchBound{}
}

type bnbNode struct {
	lb []float64
	ub []float64
}

func (s *BranchBound) Solve(ctx context.Context, m *Model, timeLimit time.Duration) (*Solution, error) {
	if m.NumVars == 0 {
		return &Solution{Status: StatusOptimal}, nil
	}
	deadline := time.Now().Add(timeLimit)

	root := bnbNode{lb: make([]float64, m.NumVars), ub: make([]float64, m.NumVars)}
	for i := 0; i < m.NumVars; i++ {
		if m.FixedZero[i] {
			root.ub[i] = 0
		} else {
			root.ub[i] = 1
		}
	}

	var (
		bestVals []float64
		bestObj  = math.Inf(1)
		timedOut bool
	)

	stack := []bnbNode{root}
	for len(stack) > 0 {
		if time.Now().After(deadline) || ctx.Err() != nil {
			timedOut = true
			break
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, x, err := s.solveRelaxation(m, node)
		if err != nil {
			// Infeasible subproblem (or a numerically degenerate one):
			// prune.
			continue
		}
		if obj >= bestObj-integralityTol {
			continue
		}

		branchVar := mostFractional(x)
		if branchVar < 0 {
			bestVals = roundBinary(x)
			bestObj = obj
			continue
		}

		zero := node.clone()
		zero.ub[branchVar] = 0
		one := node.clone()
		one.lb[branchVar] = 1
		stack = append(stack, zero, one)
	}

	sol := &Solution{}
	switch {
	case bestVals != nil && !timedOut:
		sol.Status = StatusOptimal
	case bestVals != nil:
		sol.Status = StatusFeasible
	case timedOut:
		sol.Status = StatusNoSolution
	default:
		sol.Status = StatusInfeasible
	}
	if bestVals != nil {
		sol.Values = bestVals
		sol.Objective = bestObj
	}
	return sol, nil
}

// solveRelaxation solves the LP relaxation of the model restricted to the
// node's variable bounds.
func (s *BranchBound) solveRelaxation(m *Model, node bnbNode) (float64, []float64, error) {
	n := m.NumVars

	var numLE int
	for _, cons := range m.Constraints {
		if cons.Sense == LE {
			numLE++
		}
	}

	// Box constraints first (x <= ub, -x <= -lb), then the model's
	// inequality rows.
	rowsG := 2*n + numLE
	g := mat.NewDense(rowsG, n, nil)
	h := make([]float64, rowsG)
	for i := 0; i < n; i++ {
		g.Set(i, i, 1)
		h[i] = node.ub[i]
		g.Set(n+i, i, -1)
		h[n+i] = -node.lb[i]
	}

	var numEQ int
	for _, cons := range m.Constraints {
		if cons.Sense == EQ {
			numEQ++
		}
	}
	var a *mat.Dense
	var b []float64
	if numEQ > 0 {
		a = mat.NewDense(numEQ, n, nil)
		b = make([]float64, numEQ)
	}

	leRow, eqRow := 2 * n, 0
	for _, cons := range m.Constraints {
		switch cons.Sense {
		case LE:
			for _, t := range cons.Terms {
				g.Set(leRow, t.Var, g.At(leRow, t.Var)+t.Coeff)
			}
			h[leRow] = cons.RHS
			leRow++
		case EQ:
			for _, t := range cons.Terms {
				a.Set(eqRow, t.Var, a.At(eqRow, t.Var)+t.Coeff)
			}
			b[eqRow] = cons.RHS
			eqRow++
		}
	}

	var cStd []float64
	var aStd *mat.Dense
	var bStd []float64
	if a != nil {
		cStd, aStd, bStd = lp.Convert(m.Objective, g, h, a, b)
	} else {
		cStd, aStd, bStd = lp.Convert(m.Objective, g, h, nil, nil)
	}

	obj, xStd, err := lp.Simplex(cStd, aStd, bStd, simplexTol, nil)
	if err != nil {
		return 0, nil, err
	}

	// Convert splits each free variable into a positive pair; recover the
	// original values.
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xStd[i] - xStd[n+i]
	}
	return obj, x, nil
}

// mostFractional picks the variable farthest from integrality, or -1 when
// the point is integral.
func mostFractional(x []float64) int {
	best, bestDist := -1, integralityTol
	for i, v := range x {
		dist := math.Abs(v - math.Round(v))
		if dist > bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func roundBinary(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Round(v)
	}
	return out
}

func (n bnbNode) clone() bnbNode {
	lb := make([]float64, len(n.lb))
	ub := make([]float64, len(n.ub))
	copy(lb, n.lb)
	copy(ub, n.ub)
	return bnbNode{lb: lb, ub: ub}
}
