package harness

import (
	"fmt"
	"path/filepath"
	"strconv"

	"packtest/internal/mode"
	"packtest/internal/packctl"
)

// countByTimeBucketSize is the bucket width, in minutes, passed to
// count-by-time searches. The oracle only verifies the total count, so the
// value just needs to be stable.
const countByTimeBucketSize = 10

// searchTypeOptions derives the type-specific package CLI options for one
// search. The switch is exhaustive over the closed search-type set; an
// unhandled value is an error, never a silent default.
func searchTypeOptions(searchType mode.SearchType, job *packctl.CompressionJob) ([]string, error) {
	switch searchType {
	case mode.SearchBasic:
		return []string{"--raw"}, nil
	case mode.SearchFilePath:
		scope, err := filePathScope(job)
		if err != nil {
			return nil, err
		}
		return []string{"--file-path", scope, "--raw"}, nil
	case mode.SearchIgnoreCase:
		return []string{"--ignore-case", "--raw"}, nil
	case mode.SearchCountResults:
		return []string{"--count", "--raw"}, nil
	case mode.SearchCountByTime:
		return []string{"--count-by-time", strconv.Itoa(countByTimeBucketSize), "--raw"}, nil
	case mode.SearchTimeRange:
		return []string{
			"--begin-time", strconv.FormatInt(job.Metadata.BeginTsMs, 10),
			"--end-time", strconv.FormatInt(job.Metadata.EndTsMs, 10),
			"--raw",
		}, nil
	default:
		return nil, fmt.Errorf("search type %v has not been configured for options list construction", searchType)
	}
}

// filePathScope resolves the sub-file that file-path searches (and their
// oracle runs) are narrowed to.
func filePathScope(job *packctl.CompressionJob) (string, error) {
	if job.Metadata.FilePathSearchSubfile == "" {
		return "", fmt.Errorf("dataset %q declares no sub-file for file path search", job.DatasetName)
	}
	return filepath.Join(job.DatasetPath, job.Metadata.FilePathSearchSubfile), nil
}
