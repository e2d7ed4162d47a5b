//go:generate mockgen -destination=./mocks/script.go . Executor

package script

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Executor starts an interpreter on a script file and waits for it to exit.
type Executor interface {
	Run(ctx context.Context, interpreter, scriptPath string) error
}

// ProcessExecutor runs interpreters as child processes that inherit the
// working directory and environment of pakr. No timeout is applied.
type ProcessExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessExecutor returns an executor wired to the process's stdout and stderr.
func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes "interpreter scriptPath". A missing binary and a non-zero exit both return an error.
func (e *ProcessExecutor) Run(ctx context.Context, interpreter, scriptPath string) error {
	cmd := exec.CommandContext(ctx, interpreter, scriptPath)
	cmd.Stdin = nil
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}
