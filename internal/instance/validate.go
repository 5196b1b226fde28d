package instance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"packtest/internal/logger"
	"packtest/internal/mode"
)

// Validator checks a running instance against its intended mode.
type Validator struct {
	lister ServiceLister
	log    *slog.Logger
}

// NewValidator creates a Validator using the given service lister.
func NewValidator(lister ServiceLister, log *slog.Logger) *Validator {
	return &Validator{lister: lister, log: log}
}

// Validate performs both instance checks: the running component set must
// exactly match the mode's required components, and the live configuration
// must carry the intended mode signature.
func (v *Validator) Validate(ctx context.Context, inst *Instance) error {
	logger.FromContext(ctx, v.log).Info("validating that the package instance is running correctly", "mode", inst.Mode.Name)

	if err := v.ValidateComponents(ctx, inst); err != nil {
		return err
	}
	return v.ValidateModeSignature(inst)
}

// ValidateComponents fails when the set of running services differs from the
// mode's required components, naming missing and unexpected components
// separately.
func (v *Validator) ValidateComponents(ctx context.Context, inst *Instance) error {
	modeName := inst.Mode.Name
	log := logger.FromContext(ctx, v.log)
	log.Debug("validating that all package components are running", "mode", modeName)

	running, err := v.lister.ListRunningServices(ctx, inst.ProjectName())
	if err != nil {
		return fmt.Errorf("failed to list running services for mode %q: %w", modeName, err)
	}

	runningSet := make(map[string]bool, len(running))
	for _, svc := range running {
		runningSet[svc] = true
	}
	requiredSet := make(map[string]bool, len(inst.Mode.Components))
	for _, c := range inst.Mode.Components {
		requiredSet[c] = true
	}

	var missing, unexpected []string
	for c := range requiredSet {
		if !runningSet[c] {
			missing = append(missing, c)
		}
	}
	for svc := range runningSet {
		if !requiredSet[svc] {
			unexpected = append(unexpected, svc)
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(unexpected)

	msg := fmt.Sprintf("component validation failed for the %s package test.", modeName)
	if len(missing) > 0 {
		msg += fmt.Sprintf(" Missing components: %v.", missing)
	}
	if len(unexpected) > 0 {
		msg += fmt.Sprintf(" Unexpected services: %v.", unexpected)
	}

	log.Error(msg)
	return fmt.Errorf("%s", msg)
}

// ValidateModeSignature fails when the live configuration cannot be parsed
// or does not carry the intended mode signature. A malformed live config is
// a hard failure, not a mismatch.
func (v *Validator) ValidateModeSignature(inst *Instance) error {
	modeName := inst.Mode.Name
	v.log.Debug("validating that the package is running in the correct configuration", "mode", modeName)

	data, err := os.ReadFile(inst.SharedConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read live config %s: %w", inst.SharedConfigPath, err)
	}

	running, err := mode.ParseSignature(data)
	if err != nil {
		v.log.Error("the live config could not be validated", "mode", modeName, "error", err)
		return fmt.Errorf("the live config of the %s package could not be validated: %w", modeName, err)
	}

	if !inst.Mode.Intended.Matches(running) {
		diff := inst.Mode.Intended.Diff(running)
		v.log.Error("mode validation failed", "mode", modeName, "diff", diff)
		return fmt.Errorf("mode validation failed for the %s package test (-intended +running):\n%s", modeName, diff)
	}
	return nil
}
