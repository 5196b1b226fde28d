// Package dataset loads and validates sample-dataset metadata descriptors.
//
// Each sample dataset is a directory containing a metadata.json descriptor
// and the raw log files themselves under a declared subdirectory.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MetadataFileName is the descriptor file expected inside each dataset dir.
const MetadataFileName = "metadata.json"

// Metadata describes one sample dataset. Read-only once loaded.
type Metadata struct {
	// LogSubdirectory is the subdirectory, relative to the dataset dir,
	// containing the raw log files.
	LogSubdirectory string

	// TimestampKey names the timestamp field for structured datasets.
	// Empty for text datasets.
	TimestampKey string

	// BeginTsMs and EndTsMs bound the timestamps present in the dataset,
	// in milliseconds.
	BeginTsMs int64
	EndTsMs   int64

	// FilePathSearchSubfile is the file, relative to the log subdirectory,
	// targeted by file-path-scoped searches. Empty when the dataset does
	// not support them.
	FilePathSearchSubfile string
}

// rawMetadata mirrors the on-disk descriptor. Pointer fields distinguish
// missing keys from zero values.
type rawMetadata struct {
	LogSubdirectory       *string `json:"subdirectory_containing_log_files"`
	TimestampKey          *string `json:"timestamp_key"`
	BeginTsMs             *int64  `json:"begin_ts_ms"`
	EndTsMs               *int64  `json:"end_ts_ms"`
	FilePathSearchSubfile *string `json:"subfile_for_file_path_search"`
}

// Load reads and validates the metadata descriptor inside datasetDir.
func Load(datasetDir string) (Metadata, error) {
	path := filepath.Join(datasetDir, MetadataFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read dataset descriptor %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a metadata descriptor.
func Parse(data []byte) (Metadata, error) {
	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return Metadata{}, fmt.Errorf("parse dataset descriptor: %w", err)
	}

	if raw.LogSubdirectory == nil || *raw.LogSubdirectory == "" {
		return Metadata{}, fmt.Errorf("dataset descriptor missing required key %q", "subdirectory_containing_log_files")
	}
	if raw.BeginTsMs == nil {
		return Metadata{}, fmt.Errorf("dataset descriptor missing required key %q", "begin_ts_ms")
	}
	if raw.EndTsMs == nil {
		return Metadata{}, fmt.Errorf("dataset descriptor missing required key %q", "end_ts_ms")
	}
	if *raw.BeginTsMs > *raw.EndTsMs {
		return Metadata{}, fmt.Errorf("dataset descriptor has begin_ts_ms %d > end_ts_ms %d", *raw.BeginTsMs, *raw.EndTsMs)
	}

	md := Metadata{
		LogSubdirectory: *raw.LogSubdirectory,
		BeginTsMs:       *raw.BeginTsMs,
		EndTsMs:         *raw.EndTsMs,
	}
	if raw.TimestampKey != nil {
		md.TimestampKey = *raw.TimestampKey
	}
	if raw.FilePathSearchSubfile != nil {
		md.FilePathSearchSubfile = *raw.FilePathSearchSubfile
	}
	return md, nil
}

// ValidateDirExists fails when path is not an existing directory.
func ValidateDirExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dataset directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("dataset path %s is not a directory", path)
	}
	return nil
}
