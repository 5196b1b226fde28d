package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"packtest/internal/config"
	"packtest/internal/harness"
	"packtest/internal/instance"
	"packtest/internal/logger"
	"packtest/internal/runner"
)

// newScenario assembles a fully wired scenario from the current viper
// settings. The returned cleanup closes the command log sink and must be
// called once the scenario is done.
func newScenario() (*harness.Scenario, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	m, err := harness.ModeByName(cfg, viper.GetString("mode"))
	if err != nil {
		return nil, nil, err
	}

	log := logger.New()

	sink, err := logger.OpenSink(cfg.LogFilePath)
	if err != nil {
		return nil, nil, err
	}

	lister, err := instance.NewDockerLister()
	if err != nil {
		sink.Close()
		return nil, nil, fmt.Errorf("service introspection unavailable: %w", err)
	}

	r := runner.New(sink, log, cfg.CommandTimeout)
	s, err := harness.NewScenario(cfg, m, viper.GetString("instance-id"), lister, r, log)
	if err != nil {
		sink.Close()
		return nil, nil, err
	}

	cleanup := func() { sink.Close() }
	return s, cleanup, nil
}
