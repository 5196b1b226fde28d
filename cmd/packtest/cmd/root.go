package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "packtest",
	Short: "packtest verifies a log compression-and-search package against an independent oracle",
	Long: `packtest is a differential-testing harness for a log compression-and-search
package. It validates a running instance from the outside:

  - the instance runs exactly the components its mode requires
  - the instance's live configuration carries the intended mode signature
  - compressing then decompressing a sample dataset reproduces it byte for byte
  - search results match grep, an independently implemented oracle, across
    raw, case-insensitive, counting, time-bucketed, time-range, and
    path-scoped queries

Common workflows:

  Validate a running instance:
    packtest validate --mode text --instance-id <id>

  Verify compression of a sample dataset:
    packtest compress text_multifile --mode text

  Verify every search type against the oracle:
    packtest search text_multifile "Saturn" --mode text

  Full scenario (start, validate, compress, search, stop):
    packtest run text_multifile "Saturn" --mode text

Configuration:
  Settings come from flags, a config file, or PACKTEST_-prefixed environment
  variables:
    PACKTEST_PACKAGE_DIR       Root of the package installation under test
    PACKTEST_PACKAGE_CONFIG    Config file passed to the package scripts
    PACKTEST_TEXT_DATA_DIR     Sample datasets for the text mode
    PACKTEST_JSON_DATA_DIR     Sample datasets for the json mode
    PACKTEST_LOG_FILE_PATH     Append-only log of every command's output`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".packtest"
		viper.AddConfigPath(home)
		viper.SetConfigName(".packtest")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "PACKTEST_VARNAME"
	viper.SetEnvPrefix("PACKTEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.packtest.yaml)")

	rootCmd.PersistentFlags().String("mode", "text", "operating mode under test (text or json)")
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))

	rootCmd.PersistentFlags().String("package-dir", "", "root of the package installation under test")
	viper.BindPFlag("package-dir", rootCmd.PersistentFlags().Lookup("package-dir"))

	rootCmd.PersistentFlags().String("package-config", "", "config file passed to the package control scripts")
	viper.BindPFlag("package-config", rootCmd.PersistentFlags().Lookup("package-config"))

	rootCmd.PersistentFlags().String("shared-config", "", "live config file written by the running package")
	viper.BindPFlag("shared-config", rootCmd.PersistentFlags().Lookup("shared-config"))

	rootCmd.PersistentFlags().String("text-data-dir", "", "sample-dataset root for the text mode")
	viper.BindPFlag("text-data-dir", rootCmd.PersistentFlags().Lookup("text-data-dir"))

	rootCmd.PersistentFlags().String("json-data-dir", "", "sample-dataset root for the json mode")
	viper.BindPFlag("json-data-dir", rootCmd.PersistentFlags().Lookup("json-data-dir"))

	rootCmd.PersistentFlags().String("extraction-dir", "", "scratch directory for decompression verification")
	viper.BindPFlag("extraction-dir", rootCmd.PersistentFlags().Lookup("extraction-dir"))

	rootCmd.PersistentFlags().String("log-file-path", "", "append-only log file for command output")
	viper.BindPFlag("log-file-path", rootCmd.PersistentFlags().Lookup("log-file-path"))

	rootCmd.PersistentFlags().Duration("command-timeout", 0, "timeout for every external command")
	viper.BindPFlag("command-timeout", rootCmd.PersistentFlags().Lookup("command-timeout"))

	rootCmd.PersistentFlags().String("instance-id", "", "target an existing instance instead of a fresh one")
	viper.BindPFlag("instance-id", rootCmd.PersistentFlags().Lookup("instance-id"))
}
