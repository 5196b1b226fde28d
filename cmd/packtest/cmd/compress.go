package cmd

import (
	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress [dataset]",
	Short: "Compress a sample dataset and verify the round trip is lossless",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetName := args[0]

		s, cleanup, err := newScenario()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := s.Validate(cmd.Context()); err != nil {
			return err
		}
		if _, err := s.CompressAndVerify(cmd.Context(), datasetName); err != nil {
			return err
		}
		cmd.Printf("Compression round trip OK for dataset %q\n", datasetName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)
}
