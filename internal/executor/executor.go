// Package executor runs commands through the system shell and captures
// their output for caching.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/runcache/internal/logging"
)

// Result holds everything a command produced: both output streams as raw
// bytes and the exit code. A non-zero exit code is a normal result, not an
// error.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Shell executes command strings via the platform shell, so operators like
// pipes, && and globbing behave exactly as at an interactive prompt.
type Shell struct{}

// NewShell creates a shell executor.
func NewShell() *Shell {
	return &Shell{}
}

// shellCommand returns the interpreter and its command flag for this
// platform.
func shellCommand() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// Execute runs command through the shell and blocks until it terminates.
// Stdout and stderr are captured separately and unmodified. An error is
// returned only when the shell itself cannot be spawned or its output
// cannot be read; the command exiting non-zero is reported via
// Result.ExitCode.
func (s *Shell) Execute(ctx context.Context, command string) (*Result, error) {
	log := logging.FromContext(ctx)

	shell, flag := shellCommand()
	cmd := exec.CommandContext(ctx, shell, flag, command)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stderr pipe: %w", err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "executor").
		Str("shell", shell).
		Str("command", command).
		Msg("executing command")

	if startErr := cmd.Start(); startErr != nil {
		return nil, fmt.Errorf("spawning shell: %w", startErr)
	}

	// Drain both pipes concurrently so a command filling one pipe's buffer
	// while we read the other cannot deadlock.
	var stdout, stderr []byte
	g := new(errgroup.Group)
	g.Go(func() error {
		var readErr error
		stdout, readErr = io.ReadAll(stdoutPipe)
		return readErr
	})
	g.Go(func() error {
		var readErr error
		stderr, readErr = io.ReadAll(stderrPipe)
		return readErr
	})

	readErr := g.Wait()
	waitErr := cmd.Wait()

	if readErr != nil {
		return nil, fmt.Errorf("reading command output: %w", readErr)
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("waiting for command: %w", waitErr)
		}
		// Includes termination by signal, which surfaces as the shell's
		// usual 128+signal convention.
		exitCode = exitErr.ExitCode()
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "executor").
		Int("exit_code", exitCode).
		Int("stdout_bytes", len(stdout)).
		Int("stderr_bytes", len(stderr)).
		Msg("command finished")

	return &Result{Stdout: stdout, Stderr: stderr, ExitCode: exitCode}, nil
}
