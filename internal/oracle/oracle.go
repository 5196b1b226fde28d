// Package oracle derives the independent ground-truth command for a search
// verification: a grep invocation whose semantics match the package's search
// behavior for a given search type, plus an optional aggregation pipe.
//
// grep has no concept of timestamps or structured counting, so equivalence
// leans on two documented approximations. Time-range and file-path searches
// rely on the sample datasets being built so that a plain (or sub-path
// scoped) match equals the filtered match; they are not general time or path
// oracles. Count-by-time reuses the count pipe and checks only that the
// total count matches, not bucket boundaries.
package oracle

import (
	"fmt"

	"packtest/internal/mode"
)

// Command is a derived oracle invocation. When PostPipe is non-nil, the
// oracle's stdout feeds the pipe and the pipe's stdout is the oracle result.
type Command struct {
	Argv     []string
	PostPipe []string
}

// baseFlags apply to every oracle invocation: match the whole tree, drop
// filename prefixes so output is comparable across sides, and never color.
func baseFlags() []string {
	return []string{"--recursive", "--no-filename", "--color=never"}
}

// sumPipe collapses grep's per-file counts into the single aggregate the
// package reports.
func sumPipe() []string {
	return []string{"awk", "{s+=$1} END {print s}"}
}

// Derive builds the oracle command for the given search type. searchPath is
// the already-scoped path to match against: the whole dataset for most
// types, the declared sub-file for file-path searches.
func Derive(searchType mode.SearchType, grepPath, query, searchPath string) (Command, error) {
	flags := baseFlags()

	var pipe []string
	switch searchType {
	case mode.SearchBasic, mode.SearchFilePath, mode.SearchTimeRange:
		// File-path scoping happens via searchPath; time-range equivalence
		// holds only for single-bucket sample datasets.
	case mode.SearchIgnoreCase:
		flags = append(flags, "--ignore-case")
	case mode.SearchCountResults, mode.SearchCountByTime:
		flags = append(flags, "--count")
		pipe = sumPipe()
	default:
		return Command{}, fmt.Errorf("search type %v has not been configured for oracle command construction", searchType)
	}

	argv := append([]string{grepPath}, flags...)
	argv = append(argv, query, searchPath)
	return Command{Argv: argv, PostPipe: pipe}, nil
}
