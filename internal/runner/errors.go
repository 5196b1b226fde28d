package runner

import (
	"fmt"
	"strings"
	"time"
)

// ExecError reports a command that ran to completion but exited nonzero.
type ExecError struct {
	Argv     []string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", strings.Join(e.Argv, " "), e.ExitCode)
	if s := strings.TrimSpace(string(e.Stderr)); s != "" {
		msg += ": " + s
	}
	return msg
}

// TimeoutError reports a command that exceeded its time bound. It is kept
// distinct from ExecError so callers can report "hung" rather than "failed".
type TimeoutError struct {
	Argv    []string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q did not finish within %s", strings.Join(e.Argv, " "), e.Timeout)
}
