// Package packctl drives the package's external control surface: the start,
// stop, compress, decompress, and search scripts shipped with the package
// installation under test.
package packctl

import (
	"context"
	"fmt"
	"log/slog"

	"packtest/internal/config"
	"packtest/internal/logger"
	"packtest/internal/runner"
)

// extractFilesSubcommand selects file extraction on the decompression
// script's CLI.
const extractFilesSubcommand = "x"

// composeProjectEnv is the environment variable the package's scripts read
// to name the service group they start, stop, and talk to.
const composeProjectEnv = "COMPOSE_PROJECT_NAME"

// Control invokes the package's control scripts. Every invocation passes the
// harness-managed package config file, exports the instance's project name,
// and runs under the shared timeout.
type Control struct {
	cfg *config.Config
	r   *runner.Runner
	env []string
	log *slog.Logger
}

// New creates a Control around the given harness configuration. All script
// invocations carry projectName in the environment so the scripts act on
// this instance's service group and no other.
func New(cfg *config.Config, r *runner.Runner, projectName string, log *slog.Logger) *Control {
	var env []string
	if projectName != "" {
		env = []string{composeProjectEnv + "=" + projectName}
	}
	return &Control{cfg: cfg, r: r, env: env, log: log}
}

// Start boots the package instance. A nonzero exit or timeout is fatal to
// the scenario.
func (c *Control) Start(ctx context.Context) error {
	logger.FromContext(ctx, c.log).Info("starting the package")
	cmd := []string{c.cfg.StartScript(), "--config", c.cfg.PackageConfigFile}
	if _, err := c.r.Run(ctx, cmd, runner.Options{Env: c.env}); err != nil {
		return fmt.Errorf("the package failed to start: %w", err)
	}
	return nil
}

// Stop shuts the package instance down.
func (c *Control) Stop(ctx context.Context) error {
	logger.FromContext(ctx, c.log).Info("stopping the package")
	cmd := []string{c.cfg.StopScript(), "--config", c.cfg.PackageConfigFile}
	if _, err := c.r.Run(ctx, cmd, runner.Options{Env: c.env}); err != nil {
		return fmt.Errorf("the package failed to stop: %w", err)
	}
	return nil
}

// Compress runs the compression script for the given job.
func (c *Control) Compress(ctx context.Context, job CompressionJob) error {
	logger.FromContext(ctx, c.log).Info("compressing sample dataset", "dataset", job.DatasetName)

	cmd := []string{c.cfg.CompressScript(), "--config", c.cfg.PackageConfigFile}
	cmd = append(cmd, job.Options...)
	cmd = append(cmd, job.DatasetPath)

	if _, err := c.r.Run(ctx, cmd, runner.Options{Env: c.env}); err != nil {
		return fmt.Errorf("compression of dataset %q failed: %w", job.DatasetName, err)
	}
	return nil
}

// Decompress extracts all archived files into extractionDir.
func (c *Control) Decompress(ctx context.Context, extractionDir string) error {
	logger.FromContext(ctx, c.log).Info("decompressing archives", "extraction_dir", extractionDir)

	cmd := []string{
		c.cfg.DecompressScript(),
		"--config", c.cfg.PackageConfigFile,
		extractFilesSubcommand,
		"--extraction-dir", extractionDir,
	}

	if _, err := c.r.Run(ctx, cmd, runner.Options{Env: c.env}); err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}
	return nil
}

// Search runs the search script for the given job and returns its stdout.
func (c *Control) Search(ctx context.Context, job SearchJob) (string, error) {
	logger.FromContext(ctx, c.log).Info("performing search on sample dataset",
		"search", job.Name,
		"dataset", job.Compression.DatasetName,
	)

	cmd := []string{c.cfg.SearchScript(), "--config", c.cfg.PackageConfigFile}
	cmd = append(cmd, job.Options...)
	cmd = append(cmd, job.Query)

	res, err := c.r.Run(ctx, cmd, runner.Options{Env: c.env})
	if err != nil {
		return "", fmt.Errorf("%q search on dataset %q failed: %w", job.Name, job.Compression.DatasetName, err)
	}
	return string(res.Stdout), nil
}
