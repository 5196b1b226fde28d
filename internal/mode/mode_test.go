package mode

import (
	"errors"
	"testing"
)

func textSignature() ConfigSignature {
	return ConfigSignature{
		Package: PackageSignature{
			StorageEngine: StorageEngineText,
			QueryEngine:   QueryEngineText,
		},
	}
}

func TestMatches_IgnoresEnvironmentFields(t *testing.T) {
	intended := ConfigSignature{
		Package: PackageSignature{
			StorageEngine: StorageEngineStructured,
			QueryEngine:   QueryEngineStructured,
		},
		APIServer: &APIServerConfig{},
	}
	running := ConfigSignature{
		Package: PackageSignature{
			StorageEngine: StorageEngineStructured,
			QueryEngine:   QueryEngineStructured,
		},
		APIServer: &APIServerConfig{Host: "10.1.2.3", Port: 4000},
	}

	if !intended.Matches(running) {
		t.Error("signatures differing only in host/port must match")
	}
	if diff := intended.Diff(running); diff != "" {
		t.Errorf("expected empty diff, got:\n%s", diff)
	}
}

func TestMatches_DifferentStorageEngines(t *testing.T) {
	a := textSignature()
	b := ConfigSignature{
		Package: PackageSignature{
			StorageEngine: StorageEngineStructured,
			QueryEngine:   QueryEngineText,
		},
	}

	if a.Matches(b) {
		t.Error("signatures with different storage engines must not match")
	}
	if diff := a.Diff(b); diff == "" {
		t.Error("expected non-empty diff")
	}
}

func TestMatches_OptionalComponentPresence(t *testing.T) {
	with := textSignature()
	with.APIServer = &APIServerConfig{}
	without := textSignature()

	if with.Matches(without) {
		t.Error("api-server presence is mode-defining")
	}
}

func TestParseSignature_LiveConfig(t *testing.T) {
	// A live config carries many fields beyond the signature; unknown keys
	// must be ignored.
	doc := []byte(`
package:
  storage_engine: clp-s
  query_engine: clp-s
database:
  host: localhost
  port: 3306
api_server:
  host: 0.0.0.0
  port: 4000
logs_directory: /var/log/package
`)
	sig, err := ParseSignature(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Package.StorageEngine != StorageEngineStructured {
		t.Errorf("unexpected storage engine: %q", sig.Package.StorageEngine)
	}
	if sig.APIServer == nil {
		t.Error("api_server presence not captured")
	}
	if sig.LogIngestor != nil {
		t.Error("log_ingestor should be absent")
	}
}

func TestParseSignature_Malformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "{{{"},
		{name: "unknown storage engine", doc: "package:\n  storage_engine: sqlite\n  query_engine: clp\n"},
		{name: "unknown query engine", doc: "package:\n  storage_engine: clp\n  query_engine: sqlite\n"},
		{name: "missing engines", doc: "database:\n  host: localhost\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSignature([]byte(tc.doc))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	valid := Descriptor{
		Name:        "text",
		Intended:    textSignature(),
		Components:  []string{"database", "queue"},
		SearchTypes: []SearchType{SearchBasic},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noComponents := valid
	noComponents.Components = nil
	if err := noComponents.Validate(); err == nil {
		t.Error("expected error for empty component set")
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	noSearches := valid
	noSearches.SearchTypes = nil
	if err := noSearches.Validate(); err == nil {
		t.Error("expected error for empty search type list")
	}
}

func TestSearchTypeName(t *testing.T) {
	known := map[SearchType]string{
		SearchBasic:        "basic",
		SearchIgnoreCase:   "ignore case",
		SearchCountResults: "count results",
		SearchCountByTime:  "count by time",
		SearchTimeRange:    "time range",
		SearchFilePath:     "file path",
	}
	for st, want := range known {
		got, err := st.Name()
		if err != nil {
			t.Errorf("unexpected error for %v: %v", st, err)
		}
		if got != want {
			t.Errorf("unexpected name for %v: %q", st, got)
		}
	}

	if _, err := SearchType(99).Name(); err == nil {
		t.Error("expected error for unhandled search type")
	}
}
