package mode

import "fmt"

// SearchType enumerates the kinds of search the harness can verify. It is a
// closed tag set: every derivation keyed on it (package options, oracle
// command, output normalization) switches exhaustively and returns an error
// for an unhandled value, so adding a type forces every site to be updated.
type SearchType int

const (
	SearchBasic SearchType = iota
	SearchIgnoreCase
	SearchCountResults
	SearchCountByTime
	SearchTimeRange
	SearchFilePath
)

// Name returns the human-readable search name used in logs and diagnostics.
func (t SearchType) Name() (string, error) {
	switch t {
	case SearchBasic:
		return "basic", nil
	case SearchIgnoreCase:
		return "ignore case", nil
	case SearchCountResults:
		return "count results", nil
	case SearchCountByTime:
		return "count by time", nil
	case SearchTimeRange:
		return "time range", nil
	case SearchFilePath:
		return "file path", nil
	default:
		return "", fmt.Errorf("search type %d has not been configured for name construction", int(t))
	}
}

// String implements fmt.Stringer for logging; unlike Name it never fails.
func (t SearchType) String() string {
	name, err := t.Name()
	if err != nil {
		return fmt.Sprintf("SearchType(%d)", int(t))
	}
	return name
}
