// Package mode models the named operating modes of the package under test: a
// mode's expected component set and the subset of its configuration that
// defines mode identity.
package mode

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// StorageEngine selects the archive format the package writes.
type StorageEngine string

// QueryEngine selects the search backend the package queries with.
type QueryEngine string

const (
	StorageEngineText       StorageEngine = "clp"
	StorageEngineStructured StorageEngine = "clp-s"

	QueryEngineText       QueryEngine = "clp"
	QueryEngineStructured QueryEngine = "clp-s"
)

// PackageSignature is the engine-selection half of a config signature.
type PackageSignature struct {
	StorageEngine StorageEngine `yaml:"storage_engine"`
	QueryEngine   QueryEngine   `yaml:"query_engine"`
}

// APIServerConfig carries the api-server subsystem's settings. Only its
// presence matters for mode identity; host and port vary by environment.
type APIServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogIngestorConfig carries the log-ingestor subsystem's settings. As with
// the api-server, only presence is mode-defining.
type LogIngestorConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ConfigSignature is the subset of a full package configuration relevant to
// mode identity. Unknown fields in the live config are ignored at parse
// time; environment-specific fields inside known subsystems are ignored at
// comparison time.
type ConfigSignature struct {
	Package     PackageSignature   `yaml:"package"`
	APIServer   *APIServerConfig   `yaml:"api_server"`
	LogIngestor *LogIngestorConfig `yaml:"log_ingestor"`
}

// identity reduces a signature to its mode-defining fields.
type identity struct {
	StorageEngine  StorageEngine
	QueryEngine    QueryEngine
	HasAPIServer   bool
	HasLogIngestor bool
}

func (s ConfigSignature) identity() identity {
	return identity{
		StorageEngine:  s.Package.StorageEngine,
		QueryEngine:    s.Package.QueryEngine,
		HasAPIServer:   s.APIServer != nil,
		HasLogIngestor: s.LogIngestor != nil,
	}
}

// Matches reports whether two signatures describe the same mode. Fields that
// vary by environment (hosts, ports, paths) never affect the result.
func (s ConfigSignature) Matches(other ConfigSignature) bool {
	return s.identity() == other.identity()
}

// Diff renders the mode-defining differences between two signatures, for
// failure messages. Empty when the signatures match.
func (s ConfigSignature) Diff(other ConfigSignature) string {
	return cmp.Diff(s.identity(), other.identity())
}

// ValidationError reports a live configuration that could not be parsed into
// the signature shape.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("live configuration failed validation: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseSignature decodes a live configuration document into a
// ConfigSignature. Malformed input or unknown engine values yield a
// *ValidationError.
func ParseSignature(data []byte) (ConfigSignature, error) {
	var sig ConfigSignature
	if err := yaml.Unmarshal(data, &sig); err != nil {
		return ConfigSignature{}, &ValidationError{Err: err}
	}

	switch sig.Package.StorageEngine {
	case StorageEngineText, StorageEngineStructured:
	default:
		return ConfigSignature{}, &ValidationError{
			Err: fmt.Errorf("unknown storage engine %q", sig.Package.StorageEngine),
		}
	}
	switch sig.Package.QueryEngine {
	case QueryEngineText, QueryEngineStructured:
	default:
		return ConfigSignature{}, &ValidationError{
			Err: fmt.Errorf("unknown query engine %q", sig.Package.QueryEngine),
		}
	}
	return sig, nil
}

// Descriptor describes one named operating mode: its intended configuration
// signature, the components that must be observably running, and the search
// types the mode supports. Immutable once constructed.
type Descriptor struct {
	Name        string
	Intended    ConfigSignature
	Components  []string
	SearchTypes []SearchType
}

// Validate rejects descriptors that cannot drive a scenario.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return errors.New("mode descriptor missing name")
	}
	if len(d.Components) == 0 {
		return fmt.Errorf("mode %q declares no required components", d.Name)
	}
	if len(d.SearchTypes) == 0 {
		return fmt.Errorf("mode %q declares no search types", d.Name)
	}
	return nil
}
