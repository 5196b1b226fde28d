// Package runner executes external commands on behalf of the harness. Every
// command's stdout and stderr are appended to the shared log sink before the
// call returns, so failed runs can be diagnosed without rerunning.
package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"packtest/internal/logger"
)

// DefaultTimeout bounds every external invocation unless the caller
// overrides it. A hung package script must not stall the suite indefinitely.
const DefaultTimeout = 120 * time.Second

// Result holds the captured outcome of a completed command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Options tunes a single invocation.
type Options struct {
	// Timeout overrides the runner's default timeout when positive.
	Timeout time.Duration

	// Stdin, when non-nil, is fed to the process on standard input.
	Stdin []byte

	// Env holds extra KEY=VALUE entries appended to the current process
	// environment.
	Env []string
}

// Runner runs commands with a bounded timeout and logs their output.
type Runner struct {
	sink    *logger.Sink
	log     *slog.Logger
	timeout time.Duration
}

// New creates a Runner writing command output to sink. A non-positive
// timeout falls back to DefaultTimeout.
func New(sink *logger.Sink, log *slog.Logger, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{sink: sink, log: log, timeout: timeout}
}

// Run executes argv, captures both output streams, and appends them to the
// log sink. It returns an *ExecError when the command exits nonzero and a
// *TimeoutError when the command exceeds its bound.
func (r *Runner) Run(ctx context.Context, argv []string, opts Options) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty argv")
	}

	log := logger.FromContext(ctx, r.log)

	timeout := r.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug("running command", "argv", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdin != nil {
		cmd.Stdin = bytes.NewReader(opts.Stdin)
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	runErr := cmd.Run()

	res := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if r.sink != nil {
		if err := r.sink.Append(res.Stdout, res.Stderr); err != nil {
			log.Warn("failed to append command output to log sink", "error", err)
		}
	}

	if runErr == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		err := &TimeoutError{Argv: argv, Timeout: timeout}
		log.Error("command timed out", "argv", argv, "timeout", timeout)
		return res, err
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		err := &ExecError{
			Argv:     argv,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
		log.Error("command failed", "argv", argv, "exit_code", res.ExitCode, "stderr", string(res.Stderr))
		return res, err
	}

	// Start failures (missing binary, permission) surface as-is.
	log.Error("command could not be run", "argv", argv, "error", runErr)
	return res, runErr
}
