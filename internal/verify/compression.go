// Package verify implements the differential verification engine: the
// compression round-trip check and the search-versus-oracle equivalence
// check.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"packtest/internal/logger"
	"packtest/internal/packctl"
)

// MismatchError reports a verification whose two sides disagreed.
type MismatchError struct {
	What string
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: want %q, got %q", e.What, e.Want, e.Got)
}

// Compression verifies that compressing then decompressing a sample dataset
// reproduces it exactly.
type Compression struct {
	ctl           *packctl.Control
	extractionDir string
	log           *slog.Logger
}

// NewCompression creates a Compression verifier extracting into
// extractionDir, which it clears before and after each use.
func NewCompression(ctl *packctl.Control, extractionDir string, log *slog.Logger) *Compression {
	return &Compression{ctl: ctl, extractionDir: extractionDir, log: log}
}

// CompressAndVerify compresses the job's dataset, decompresses the archives
// into the scratch directory, and compares the reconstructed tree against
// the original byte for byte.
func (v *Compression) CompressAndVerify(ctx context.Context, job packctl.CompressionJob) error {
	if err := v.ctl.Compress(ctx, job); err != nil {
		return err
	}

	log := logger.FromContext(ctx, v.log)
	log.Info("verifying that the sample dataset was compressed correctly", "dataset", job.DatasetName)

	if err := ClearDirectory(v.extractionDir); err != nil {
		return err
	}
	defer func() {
		if err := ClearDirectory(v.extractionDir); err != nil {
			log.Warn("failed to clear extraction directory", "error", err)
		}
	}()

	if err := v.ctl.Decompress(ctx, v.extractionDir); err != nil {
		return err
	}

	// The package reconstructs files under the extraction dir at their
	// original absolute paths.
	outputPath := filepath.Join(v.extractionDir, strings.TrimPrefix(job.DatasetPath, string(filepath.Separator)))

	diffs, err := DiffTrees(job.DatasetPath, outputPath)
	if err != nil {
		return fmt.Errorf("failed to compare decompressed output for dataset %q: %w", job.DatasetName, err)
	}
	if len(diffs) > 0 {
		log.Error("decompressed output differs from original",
			"dataset", job.DatasetName,
			"original", job.DatasetPath,
			"output", outputPath,
			"differing_paths", diffs,
		)
		return &MismatchError{
			What: fmt.Sprintf("decompressed tree for dataset %q (original %s, output %s)", job.DatasetName, job.DatasetPath, outputPath),
			Want: "identical trees",
			Got:  fmt.Sprintf("differing paths %v", diffs),
		}
	}
	return nil
}
