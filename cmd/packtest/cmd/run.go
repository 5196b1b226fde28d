package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [dataset] [query]",
	Short: "Run a full verification scenario",
	Long: `Runs the complete flow against a fresh instance: start the package,
validate its state, verify compression of the sample dataset, verify every
search type against the oracle, and stop the package. Stop is always
attempted, even when an earlier step failed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetName, query := args[0], args[1]

		s, cleanup, err := newScenario()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := s.Run(cmd.Context(), datasetName, query); err != nil {
			return err
		}
		cmd.Printf("Scenario OK: mode %q, dataset %q\n", s.Instance().Mode.Name, datasetName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
