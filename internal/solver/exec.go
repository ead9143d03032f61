package solver

import (
	"context"
	"os/exec"
)

// commandContext is swapped in tests to avoid spawning a real solver.
var commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
