package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Runner executes generation shell commands inside a workspace directory.
type Runner struct {
	logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes one command through the shell with dir as working directory
// and returns its combined output. A non-zero exit is an error; the caller
// treats any command failure as fatal for the whole run.
func (r *Runner) Run(ctx context.Context, dir, command string) (string, error) {
	r.logger.Info("running command", "dir", dir, "command", command)

	cmd := exec.CommandContext(ctx, "/bin/sh", "-lc", command)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("command %q failed: %s: %w", command, string(out), err)
	}
	return string(out), nil
}
