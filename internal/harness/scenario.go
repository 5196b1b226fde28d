package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"packtest/internal/config"
	"packtest/internal/dataset"
	"packtest/internal/instance"
	"packtest/internal/logger"
	"packtest/internal/mode"
	"packtest/internal/packctl"
	"packtest/internal/runner"
	"packtest/internal/verify"
)

// Scenario drives one mode's verification flow against one live instance:
// validate -> compress and verify -> search and verify per search type.
// Strictly sequential; no step runs concurrently with another.
type Scenario struct {
	cfg  *config.Config
	mode Mode
	inst *instance.Instance

	ctl         *packctl.Control
	validator   *instance.Validator
	compression *verify.Compression
	search      *verify.Search
	log         *slog.Logger
}

// NewScenario assembles a Scenario for the given mode. A non-empty
// instanceID targets an existing deployment; otherwise the scenario runs
// against a freshly namespaced one. The instance's project name is exported
// to every package script invocation, so the services the scripts start are
// the ones the validator later inspects.
func NewScenario(cfg *config.Config, m Mode, instanceID string, lister instance.ServiceLister, r *runner.Runner, log *slog.Logger) (*Scenario, error) {
	if err := m.Descriptor.Validate(); err != nil {
		return nil, err
	}
	if m.dataDir == "" {
		return nil, fmt.Errorf("no dataset root configured for mode %q", m.Descriptor.Name)
	}

	inst := instance.New(m.Descriptor, cfg.SharedConfigFile)
	if instanceID != "" {
		inst.ID = instanceID
	}

	ctl := packctl.New(cfg, r, inst.ProjectName(), log)
	return &Scenario{
		cfg:         cfg,
		mode:        m,
		inst:        inst,
		ctl:         ctl,
		validator:   instance.NewValidator(lister, log),
		compression: verify.NewCompression(ctl, cfg.ExtractionDir, log),
		search:      verify.NewSearch(ctl, r, log),
		log:         log,
	}, nil
}

// withID attaches the instance ID to the context so every log line along
// the call chain carries it.
func (s *Scenario) withID(ctx context.Context) context.Context {
	return logger.WithScenarioID(ctx, s.inst.ID)
}

// Instance returns the instance handle this scenario runs against.
func (s *Scenario) Instance() *instance.Instance { return s.inst }

// Validate checks the running instance's component set and mode signature.
func (s *Scenario) Validate(ctx context.Context) error {
	return s.validator.Validate(s.withID(ctx), s.inst)
}

// CompressAndVerify compresses the named sample dataset and verifies the
// round trip. The returned job carries the metadata later searches need.
func (s *Scenario) CompressAndVerify(ctx context.Context, datasetName string) (*packctl.CompressionJob, error) {
	ctx = s.withID(ctx)
	datasetDir := filepath.Join(s.mode.dataDir, datasetName)
	if err := dataset.ValidateDirExists(datasetDir); err != nil {
		return nil, err
	}

	md, err := dataset.Load(datasetDir)
	if err != nil {
		return nil, err
	}

	job := &packctl.CompressionJob{
		DatasetName: datasetName,
		Metadata:    md,
		Options:     s.mode.compressionOptions(datasetName, md),
		DatasetPath: filepath.Join(datasetDir, md.LogSubdirectory),
	}

	if err := s.compression.CompressAndVerify(ctx, *job); err != nil {
		return nil, err
	}
	return job, nil
}

// SearchAndVerify runs one search-type verification against a previously
// compressed dataset.
func (s *Scenario) SearchAndVerify(ctx context.Context, searchType mode.SearchType, job *packctl.CompressionJob, query string) error {
	ctx = s.withID(ctx)
	searchName, err := searchType.Name()
	if err != nil {
		return err
	}

	typeOptions, err := searchTypeOptions(searchType, job)
	if err != nil {
		return err
	}
	options := append(append([]string{}, s.mode.searchBaseOptions(job.DatasetName)...), typeOptions...)

	searchJob := packctl.SearchJob{
		Name:        searchName,
		Compression: job,
		Options:     options,
		Query:       query,
	}
	if searchType == mode.SearchFilePath {
		scope, err := filePathScope(job)
		if err != nil {
			return err
		}
		searchJob.PathScope = scope
	}

	return s.search.SearchAndVerify(ctx, searchType, searchJob)
}

// SearchAndVerifyAll runs every search type the mode supports, in order,
// against the same compressed archive. All mismatches are reported, not just
// the first.
func (s *Scenario) SearchAndVerifyAll(ctx context.Context, job *packctl.CompressionJob, query string) error {
	var errs []error
	for _, st := range s.mode.Descriptor.SearchTypes {
		if err := s.SearchAndVerify(ctx, st, job, query); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start boots the package instance. Failures here are fatal to the
// scenario.
func (s *Scenario) Start(ctx context.Context) error {
	return s.ctl.Start(s.withID(ctx))
}

// Stop shuts the package instance down.
func (s *Scenario) Stop(ctx context.Context) error {
	return s.ctl.Stop(s.withID(ctx))
}

// Run executes the full flow: start, validate, compress and verify, all
// searches, stop. Stop is always attempted, even when an earlier step
// failed.
func (s *Scenario) Run(ctx context.Context, datasetName, query string) (err error) {
	ctx = s.withID(ctx)
	logger.FromContext(ctx, s.log).Info("running scenario",
		"mode", s.mode.Descriptor.Name,
		"dataset", datasetName,
	)

	if err := s.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := s.Stop(ctx); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	if err := s.Validate(ctx); err != nil {
		return err
	}

	job, err := s.CompressAndVerify(ctx, datasetName)
	if err != nil {
		return err
	}

	return s.SearchAndVerifyAll(ctx, job, query)
}
