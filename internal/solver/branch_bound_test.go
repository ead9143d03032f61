package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchBoundEmptyModel(t *testing.T) {
	sol, err := NewBranchBound().Solve(context.Background(), NewModel(0), time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Empty(t, sol.Values)
}

func TestBranchBoundCoverageEquality(t *testing.T) {
	// Four binaries, exactly two must be on; minimizing the sum leaves the
	// objective at 2.
	m := NewModel(4)
	for i := 0; i < 4; i++ {
		m.SetObjectiveCoeff(i, 1)
	}
	m.Add([]Term{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, EQ, 2)

	sol, err := NewBranchBound().Solve(context.Background(), m, 10*time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	require.Len(t, sol.Values, 4)

	var on int
	for _, v := range sol.Values {
		assert.Contains(t, []float64{0, 1}, v)
		if v == 1 {
			on++
		}
	}
	assert.Equal(t, 2, on)
	assert.InDelta(t, 2, sol.Objective, 1e-6)
}

func TestBranchBoundInfeasible(t *testing.T) {
	// x0 + x1 = 2 with x1 fixed to zero and x0 binary cannot hold.
	m := NewModel(2)
	m.SetObjectiveCoeff(0, 1)
	m.SetObjectiveCoeff(1, 1)
	m.Add([]Term{{0, 1}, {1, 1}}, EQ, 2)
	m.FixZero(1)

	sol, err := NewBranchBound().Solve(context.Background(), m, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, sol.Status)
	assert.False(t, sol.Status.HasSolution())
}

func TestBranchBoundRespectsFixedZero(t *testing.T) {
	// Maximize-like setup: negative costs pull variables to 1, but the LE
	// row and the fixing cap them.
	m := NewModel(3)
	for i := 0; i < 3; i++ {
		m.SetObjectiveCoeff(i, -1)
	}
	m.Add([]Term{{0, 1}, {1, 1}, {2, 1}}, LE, 2)
	m.FixZero(2)

	sol, err := NewBranchBound().Solve(context.Background(), m, 10*time.Second)
	require.NoError(t, err)
	require.True(t, sol.Status.HasSolution())
	assert.Equal(t, float64(0), sol.Values[2])
	assert.InDelta(t, -2, sol.Objective, 1e-6)
}

func TestBranchBoundExclusivityPair(t *testing.T) {
	// Two items competing for one slot, both demanded: only one equality
	// pair can be satisfied together with the shared LE row.
	m := NewModel(2)
	m.SetObjectiveCoeff(0, 1)
	m.SetObjectiveCoeff(1, 1)
	m.Add([]Term{{0, 1}}, EQ, 1)
	m.Add([]Term{{1, 1}}, EQ, 1)
	m.Add([]Term{{0, 1}, {1, 1}}, LE, 1)

	sol, err := NewBranchBound().Solve(context.Background(), m, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, sol.Status)
}

func TestBranchBoundZeroTimeLimit(t *testing.T) {
	m := NewModel(2)
	m.SetObjectiveCoeff(0, 1)
	m.Add([]Term{{0, 1}, {1, 1}}, EQ, 1)

	sol, err := NewBranchBound().Solve(context.Background(), m, -time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusNoSolution, sol.Status)
}

func TestMostFractional(t *testing.T) {
	assert.Equal(t, -1, mostFractional([]float64{0, 1, 1, 0}))
	assert.Equal(t, 1, mostFractional([]float64{1, 0.5, 0.9}))
	assert.Equal(t, 2, mostFractional([]float64{0.99, 1, 0.6}))
}
