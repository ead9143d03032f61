package solver

import (
	"fmt"
	"strings"
)

// WriteLP renders the model in CPLEX LP format, the text format CBC and
// most MIP solvers accept. Variables are named x<i>.
func WriteLP(m *Model) string {
	var b strings.Builder

	b.WriteString("Minimize\n obj:")
	wroteObj := false
	for i, c := range m.Objective {
		if c == 0 {
			continue
		}
		fmt.Fprintf(&b, " %s %g x%d", signOf(c, !wroteObj), abs(c), i)
		wroteObj = true
	}
	if !wroteObj {
		// LP format requires a non-empty objective row.
		b.WriteString(" 0 x0")
	}
	b.WriteString("\nSubject To\n")

	for ci, cons := range m.Constraints {
		fmt.Fprintf(&b, " c%d:", ci)
		for ti, t := range cons.Terms {
			fmt.Fprintf(&b, " %s %g x%d", signOf(t.Coeff, ti == 0), abs(t.Coeff), t.Var)
		}
		op := "<="
		if cons.Sense == EQ {
			op = "="
		}
		fmt.Fprintf(&b, " %s %g\n", op, cons.RHS)
	}

	b.WriteString("Bounds\n")
	for i, fixed := range m.FixedZero {
		if fixed {
			fmt.Fprintf(&b, " x%d = 0\n", i)
		}
	}

	b.WriteString("Binaries\n")
	for i := 0; i < m.NumVars; i++ {
		fmt.Fprintf(&b, " x%d", i)
		if (i+1)%16 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\nEnd\n")

	return b.String()
}

func signOf(c float64, first bool) string {
	if c < 0 {
		return "-"
	}
	if first {
		return ""
	}
	return "+"
}

func abs(c float64) float64 {
	if c < 0 {
		return -c
	}
	return c
}
