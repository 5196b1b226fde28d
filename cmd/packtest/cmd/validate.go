package cmd

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a running instance's component set and mode signature",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := newScenario()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := s.Validate(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Instance state OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
