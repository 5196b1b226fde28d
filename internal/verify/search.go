package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"

	"packtest/internal/logger"
	"packtest/internal/mode"
	"packtest/internal/oracle"
	"packtest/internal/packctl"
	"packtest/internal/runner"
)

// ErrCountFormat reports package search output that could not be normalized
// into the expected count format. Never silently returns a wrong number.
var ErrCountFormat = errors.New("search result is not in the expected count format")

var countPattern = regexp.MustCompile(`count: (\d+)`)

// NormalizeOutput prepares the package's raw search output for comparison
// with the oracle. Counting search types reduce to the bare number with a
// trailing newline; all other types pass through unmodified.
func NormalizeOutput(searchType mode.SearchType, raw string) (string, error) {
	switch searchType {
	case mode.SearchBasic, mode.SearchFilePath, mode.SearchIgnoreCase, mode.SearchTimeRange:
		return raw, nil
	case mode.SearchCountResults, mode.SearchCountByTime:
		m := countPattern.FindStringSubmatch(raw)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrCountFormat, raw)
		}
		return m[1] + "\n", nil
	default:
		return "", fmt.Errorf("search type %v has not been configured for output normalization", searchType)
	}
}

// Search verifies that the package's search output equals the oracle's.
type Search struct {
	ctl *packctl.Control
	r   *runner.Runner
	log *slog.Logger
}

// NewSearch creates a Search verifier.
func NewSearch(ctl *packctl.Control, r *runner.Runner, log *slog.Logger) *Search {
	return &Search{ctl: ctl, r: r, log: log}
}

// SearchAndVerify runs the package search for the job, runs the equivalent
// oracle command, normalizes both sides, and requires exact equality
// including trailing newline conventions.
func (v *Search) SearchAndVerify(ctx context.Context, searchType mode.SearchType, job packctl.SearchJob) error {
	raw, err := v.ctl.Search(ctx, job)
	if err != nil {
		return err
	}

	got, err := NormalizeOutput(searchType, raw)
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx, v.log)
	log.Info("verifying that the search was performed correctly",
		"search", job.Name,
		"dataset", job.Compression.DatasetName,
	)

	grepPath, err := exec.LookPath("grep")
	if err != nil {
		return fmt.Errorf("oracle binary not found: %w", err)
	}

	searchPath := job.Compression.DatasetPath
	if job.PathScope != "" {
		searchPath = job.PathScope
	}

	cmd, err := oracle.Derive(searchType, grepPath, job.Query, searchPath)
	if err != nil {
		return err
	}

	res, err := v.r.Run(ctx, cmd.Argv, runner.Options{})
	if err != nil {
		return fmt.Errorf("oracle command failed for %q search: %w", job.Name, err)
	}
	oracleOut := res.Stdout

	if cmd.PostPipe != nil {
		piped, err := v.r.Run(ctx, cmd.PostPipe, runner.Options{Stdin: oracleOut})
		if err != nil {
			return fmt.Errorf("oracle post-pipe failed for %q search: %w", job.Name, err)
		}
		oracleOut = piped.Stdout
	}

	want := string(oracleOut)
	if got != want {
		log.Error("search result differs from oracle result",
			"search", job.Name,
			"dataset", job.Compression.DatasetName,
			"search_result", got,
			"oracle_result", want,
		)
		return &MismatchError{
			What: fmt.Sprintf("%q search on dataset %q", job.Name, job.Compression.DatasetName),
			Want: want,
			Got:  got,
		}
	}
	return nil
}
