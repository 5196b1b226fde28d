package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears viper config between tests for isolation
func resetViper() {
	viper.Reset()
	viper.SetEnvPrefix("PACKTEST")
	viper.AutomaticEnv()
}

func TestRootCommand_Help(t *testing.T) {
	resetViper()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	for _, sub := range []string{"validate", "compress", "search", "run"} {
		if !strings.Contains(output, sub) {
			t.Errorf("help output missing subcommand %q:\n%s", sub, output)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	flags := []string{
		"mode",
		"package-dir",
		"package-config",
		"shared-config",
		"text-data-dir",
		"json-data-dir",
		"extraction-dir",
		"log-file-path",
		"command-timeout",
		"instance-id",
	}
	for _, name := range flags {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}
}

func TestValidateCommand_MissingConfig(t *testing.T) {
	resetViper()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"validate"})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error when harness is unconfigured")
	}
	if !strings.Contains(err.Error(), "package-dir is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCommand_UnknownMode(t *testing.T) {
	resetViper()
	viper.Set("package-dir", "/opt/package")
	viper.Set("package-config", "/tmp/pkg-config.yml")
	viper.Set("text-data-dir", "/data/text")
	viper.Set("mode", "parquet")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"run", "text_multifile", "Saturn"})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !strings.Contains(err.Error(), "unknown mode") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCompressCommand_RequiresDatasetArg(t *testing.T) {
	resetViper()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"compress"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing dataset argument")
	}
}
