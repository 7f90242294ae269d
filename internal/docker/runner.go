package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"nanowhale/internal/config"
)

// Runner abstracts engine CLI invocation so tests can substitute a fake.
type Runner interface {
	// Run executes one engine command to completion and returns its stdout.
	// The call is bounded by the configured command timeout.
	Run(ctx context.Context, args ...string) (string, error)
	// Command returns an unstarted command for the given engine arguments.
	// Used for long-lived streams and interactive sessions.
	Command(args ...string) *exec.Cmd
}

// CommandError describes a failed engine invocation.
type CommandError struct {
	Args     []string
	Stderr   string
	TimedOut bool
	Err      error
}

// Error makes CommandError satisfy the error interface.
func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("engine command %q timed out", strings.Join(e.Args, " "))
	}
	if e.Stderr != "" {
		return fmt.Sprintf("engine command %q failed: %s", strings.Join(e.Args, " "), strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("engine command %q failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// CLIRunner invokes the engine binary, optionally through a subsystem prefix
// (e.g. "wsl docker" for a WSL-hosted daemon).
type CLIRunner struct {
	engine config.EngineSettings
}

// NewCLIRunner creates a runner for the configured engine.
func NewCLIRunner(engine config.EngineSettings) *CLIRunner {
	return &CLIRunner{engine: engine}
}

// Run spawns exactly one subprocess, waits for it synchronously and returns
// its stdout. On timeout or non-zero exit a *CommandError is returned; callers
// treat that as "keep the previous cached value".
func (r *CLIRunner) Run(ctx context.Context, args ...string) (string, error) {
	if r.engine.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.engine.CommandTimeout)
		defer cancel()
	}

	argv := append(r.engine.CommandLine(), args...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		return "", &CommandError{
			Args:     args,
			Stderr:   stderr.String(),
			TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
			Err:      runErr,
		}
	}
	return stdout.String(), nil
}

// Command builds an unstarted command for the given engine arguments. The
// caller owns the process: start, stream and reap it.
func (r *CLIRunner) Command(args ...string) *exec.Cmd {
	argv := append(r.engine.CommandLine(), args...)
	return exec.Command(argv[0], argv[1:]...)
}
