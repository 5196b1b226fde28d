package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"packtest/internal/mode"
)

var searchTypeFlag string

// searchTypeByFlag resolves the --type flag. The switch is exhaustive over
// the closed search-type set.
func searchTypeByFlag(name string) (mode.SearchType, error) {
	switch name {
	case "basic":
		return mode.SearchBasic, nil
	case "ignore-case":
		return mode.SearchIgnoreCase, nil
	case "count":
		return mode.SearchCountResults, nil
	case "count-by-time":
		return mode.SearchCountByTime, nil
	case "time-range":
		return mode.SearchTimeRange, nil
	case "file-path":
		return mode.SearchFilePath, nil
	default:
		return 0, fmt.Errorf("unknown search type %q", name)
	}
}

var searchCmd = &cobra.Command{
	Use:   "search [dataset] [query]",
	Short: "Verify the package's search results against the oracle",
	Long: `Compresses the sample dataset, then runs either one search type or every
search type the mode supports, comparing the package's output to the
oracle's for each.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetName, query := args[0], args[1]

		s, cleanup, err := newScenario()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := s.Validate(cmd.Context()); err != nil {
			return err
		}

		job, err := s.CompressAndVerify(cmd.Context(), datasetName)
		if err != nil {
			return err
		}

		if searchTypeFlag != "" {
			st, err := searchTypeByFlag(searchTypeFlag)
			if err != nil {
				return err
			}
			if err := s.SearchAndVerify(cmd.Context(), st, job, query); err != nil {
				return err
			}
			cmd.Printf("Search %q OK for dataset %q\n", st, datasetName)
			return nil
		}

		if err := s.SearchAndVerifyAll(cmd.Context(), job, query); err != nil {
			return err
		}
		cmd.Printf("All search types OK for dataset %q\n", datasetName)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchTypeFlag, "type", "", "run a single search type (basic, ignore-case, count, count-by-time, time-range, file-path)")
	rootCmd.AddCommand(searchCmd)
}
