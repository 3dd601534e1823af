package tuner

import (
	"context"
	"io"
	"os/exec"
)

// execExecutor runs programs with os/exec
type execExecutor struct{}

// NewExecExecutor returns the Executor used in production
func NewExecExecutor() Executor {
	return execExecutor{}
}

// Run starts the binary and waits for it to exit
func (execExecutor) Run(ctx context.Context, binary string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}
