package solver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CBC shells out to the COIN-OR branch-and-cut binary. The model travels
// as an LP-format file; the incumbent comes back through a solution file.
// The caller cancels a runaway solve by killing the process (the context
// backstops the binary's own -sec limit).
type CBC struct {
	Path string
}

// NewCBC returns a backend invoking the given cbc binary.
func NewCBC(path string) *CBC {
	if path == "" {
		path = "cbc"
	}
	return &CBC{Path: path}
}

func (s *CBC) Solve(ctx context.Context, m *Model, timeLimit time.Duration) (*Solution, error) {
	if m.NumVars == 0 {
		return &Solution{Status: StatusOptimal}, nil
	}

	dir, err := os.MkdirTemp("", "grouppa-cbc-")
	if err != nil {
		return nil, fmt.Errorf("create solver workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	lpFile := filepath.Join(dir, "model.lp")
	solFile := filepath.Join(dir, "model.sol")
	if err := os.WriteFile(lpFile, []byte(WriteLP(m)), 0o600); err != nil {
		return nil, fmt.Errorf("write model: %w", err)
	}

	seconds := int(timeLimit / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	runCtx, cancel := context.WithTimeout(ctx, timeLimit+10*time.Second)
	defer cancel()

	cmd := commandContext(runCtx, s.Path,
		lpFile,
		"-sec", strconv.Itoa(seconds),
		"branch",
		"printingOptions", "all",
		"solution", solFile,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// CBC exits non-zero on some infeasible models; trust the
		// solution file when it exists.
		if _, statErr := os.Stat(solFile); statErr != nil {
			return nil, fmt.Errorf("cbc execution failed: %w: %s", err, stderr.String())
		}
	}

	raw, err := os.ReadFile(solFile)
	if err != nil {
		return &Solution{Status: StatusNoSolution}, nil
	}
	return parseCBCSolution(string(raw), m.NumVars)
}

// parseCBCSolution reads cbc's solution file: a status banner followed by
// one row per variable (index, name, value, cost).
func parseCBCSolution(raw string, numVars int) (*Solution, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return &Solution{Status: StatusNoSolution}, nil
	}

	banner := strings.ToLower(lines[0])
	sol := &Solution{Values: make([]float64, numVars)}
	switch {
	case strings.Contains(banner, "infeasible"):
		sol.Status = StatusInfeasible
		sol.Values = nil
		return sol, nil
	case strings.Contains(banner, "optimal"):
		sol.Status = StatusOptimal
	case strings.Contains(banner, "stopped"):
		sol.Status = StatusFeasible
	default:
		sol.Status = StatusNoSolution
		sol.Values = nil
		return sol, nil
	}

	if idx := strings.Index(banner, "objective value"); idx >= 0 {
		fields := strings.Fields(banner[idx:])
		if len(fields) >= 3 {
			if v, err := strconv.ParseFloat(fields[2], 64); err == nil {
				sol.Objective = v
			}
		}
	}

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[1]
		if !strings.HasPrefix(name, "x") {
			continue
		}
		varIdx, err := strconv.Atoi(name[1:])
		if err != nil || varIdx < 0 || varIdx >= numVars {
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		sol.Values[varIdx] = value
	}

	return sol, nil
}
