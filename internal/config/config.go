// Package config holds the harness settings: where the package under test
// lives, where the sample datasets are, and how external commands are run.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the harness. Values come from
// flags, a config file, or PACKTEST_-prefixed environment variables, in the
// usual viper precedence order.
type Config struct {
	// PackageDir is the root of the package installation under test.
	// Control scripts are expected under its sbin directory.
	PackageDir string

	// PackageConfigFile is the config file passed to every package script.
	PackageConfigFile string

	// SharedConfigFile is the live configuration the running package
	// writes, used for the mode-signature check.
	SharedConfigFile string

	// TextDataDir and JSONDataDir are the sample-dataset roots per mode.
	TextDataDir string
	JSONDataDir string

	// ExtractionDir is the scratch directory decompression extracts into.
	ExtractionDir string

	// LogFilePath is the append-only file capturing every command's output.
	LogFilePath string

	// CommandTimeout bounds every external invocation.
	CommandTimeout time.Duration
}

// Load reads harness configuration from viper.
func Load() (*Config, error) {
	packageDir := viper.GetString("package-dir")
	if packageDir == "" {
		return nil, fmt.Errorf("package-dir is required (flag --package-dir or PACKTEST_PACKAGE_DIR)")
	}

	packageConfigFile := viper.GetString("package-config")
	if packageConfigFile == "" {
		return nil, fmt.Errorf("package-config is required (flag --package-config or PACKTEST_PACKAGE_CONFIG)")
	}

	sharedConfigFile := viper.GetString("shared-config")
	if sharedConfigFile == "" {
		sharedConfigFile = filepath.Join(packageDir, "var", "shared-config.yml")
	}

	textDataDir := viper.GetString("text-data-dir")
	jsonDataDir := viper.GetString("json-data-dir")
	if textDataDir == "" && jsonDataDir == "" {
		return nil, fmt.Errorf("at least one dataset root is required (--text-data-dir or --json-data-dir)")
	}

	extractionDir := viper.GetString("extraction-dir")
	if extractionDir == "" {
		extractionDir = filepath.Join(packageDir, "var", "decompression")
	}

	logFilePath := viper.GetString("log-file-path")
	if logFilePath == "" {
		logFilePath = "packtest-commands.log"
	}

	timeout := viper.GetDuration("command-timeout")
	if timeout < 0 {
		return nil, fmt.Errorf("invalid command-timeout: %s", timeout)
	}
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Config{
		PackageDir:        packageDir,
		PackageConfigFile: packageConfigFile,
		SharedConfigFile:  sharedConfigFile,
		TextDataDir:       textDataDir,
		JSONDataDir:       jsonDataDir,
		ExtractionDir:     extractionDir,
		LogFilePath:       logFilePath,
		CommandTimeout:    timeout,
	}, nil
}

// Script paths within the package installation.

func (c *Config) StartScript() string      { return filepath.Join(c.PackageDir, "sbin", "start-clp.sh") }
func (c *Config) StopScript() string       { return filepath.Join(c.PackageDir, "sbin", "stop-clp.sh") }
func (c *Config) CompressScript() string   { return filepath.Join(c.PackageDir, "sbin", "compress.sh") }
func (c *Config) DecompressScript() string { return filepath.Join(c.PackageDir, "sbin", "decompress.sh") }
func (c *Config) SearchScript() string     { return filepath.Join(c.PackageDir, "sbin", "search.sh") }
