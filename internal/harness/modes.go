// Package harness wires the verifiers into full test scenarios: one
// operating mode, one sample dataset, one query, all applicable search
// types.
package harness

import (
	"fmt"

	"packtest/internal/config"
	"packtest/internal/dataset"
	"packtest/internal/mode"
)

// baseComponents are the services every mode must be running.
var baseComponents = []string{
	"database",
	"queue",
	"redis",
	"results-cache",
	"compression-scheduler",
	"query-scheduler",
	"compression-worker",
	"query-worker",
	"reducer",
	"webui",
	"garbage-collector",
}

// apiServerComponent is the optional service enabled in structured modes.
const apiServerComponent = "api-server"

// Mode bundles a mode descriptor with the harness-side knowledge needed to
// drive it: where its sample datasets live and how compression and search
// commands are parameterized for it.
type Mode struct {
	Descriptor mode.Descriptor

	dataDir            string
	compressionOptions func(datasetName string, md dataset.Metadata) []string
	searchBaseOptions  func(datasetName string) []string
}

// TextMode describes the unstructured-text operating mode. All search types
// apply, including file-path-scoped search; compression takes no extra
// options.
func TextMode(cfg *config.Config) Mode {
	return Mode{
		Descriptor: mode.Descriptor{
			Name: "clp-text",
			Intended: mode.ConfigSignature{
				Package: mode.PackageSignature{
					StorageEngine: mode.StorageEngineText,
					QueryEngine:   mode.QueryEngineText,
				},
			},
			Components: append([]string{}, baseComponents...),
			SearchTypes: []mode.SearchType{
				mode.SearchBasic,
				mode.SearchFilePath,
				mode.SearchIgnoreCase,
				mode.SearchCountResults,
				mode.SearchCountByTime,
				mode.SearchTimeRange,
			},
		},
		dataDir: cfg.TextDataDir,
		compressionOptions: func(string, dataset.Metadata) []string {
			return nil
		},
		searchBaseOptions: func(string) []string {
			return nil
		},
	}
}

// JSONMode describes the structured operating mode. Searches are scoped to
// the dataset by name, compression declares the timestamp key, and
// file-path search does not apply.
func JSONMode(cfg *config.Config) Mode {
	return Mode{
		Descriptor: mode.Descriptor{
			Name: "clp-json",
			Intended: mode.ConfigSignature{
				Package: mode.PackageSignature{
					StorageEngine: mode.StorageEngineStructured,
					QueryEngine:   mode.QueryEngineStructured,
				},
				APIServer: &mode.APIServerConfig{},
			},
			Components: append(append([]string{}, baseComponents...), apiServerComponent),
			SearchTypes: []mode.SearchType{
				mode.SearchBasic,
				mode.SearchIgnoreCase,
				mode.SearchCountResults,
				mode.SearchCountByTime,
				mode.SearchTimeRange,
			},
		},
		dataDir: cfg.JSONDataDir,
		compressionOptions: func(datasetName string, md dataset.Metadata) []string {
			return []string{
				"--timestamp-key", md.TimestampKey,
				"--dataset", datasetName,
			}
		},
		searchBaseOptions: func(datasetName string) []string {
			return []string{"--dataset", datasetName}
		},
	}
}

// ModeByName resolves a mode by its CLI name.
func ModeByName(cfg *config.Config, name string) (Mode, error) {
	switch name {
	case "text", "clp-text":
		return TextMode(cfg), nil
	case "json", "clp-json":
		return JSONMode(cfg), nil
	default:
		return Mode{}, fmt.Errorf("unknown mode %q (expected text or json)", name)
	}
}
