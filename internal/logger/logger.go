// Package logger provides structured logging setup using slog, plus the
// shared command-output sink used for post-mortem inspection.
package logger

import (
	"context"
	"log/slog"
	"os"
)

// scenarioIDKey is the context key for scenario/correlation IDs.
type scenarioIDKey struct{}

// New creates a new structured JSON logger.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// WithScenarioID returns a new context with the given scenario ID.
func WithScenarioID(ctx context.Context, scenarioID string) context.Context {
	return context.WithValue(ctx, scenarioIDKey{}, scenarioID)
}

// ScenarioIDFromContext extracts the scenario ID from the context.
func ScenarioIDFromContext(ctx context.Context) string {
	if v := ctx.Value(scenarioIDKey{}); v != nil {
		return v.(string)
	}
	return ""
}

// FromContext returns a logger with context fields (scenario ID, etc.) attached.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := ScenarioIDFromContext(ctx); id != "" {
		return base.With("scenario_id", id)
	}
	return base
}
