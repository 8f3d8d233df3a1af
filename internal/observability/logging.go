package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/booktoc/internal/logfields"
)

// LogContext holds the build-scoped values attached to log records.
type LogContext struct {
	BuildID  string
	Stage    string
	Manifest string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithBuildID adds a build ID to the context.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	lc := extractLogContext(ctx)
	lc.BuildID = buildID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// WithManifest records which TOC manifest the build runs against.
func WithManifest(ctx context.Context, manifest string) context.Context {
	lc := extractLogContext(ctx)
	lc.Manifest = manifest
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func extractLogContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func getLogAttrs(ctx context.Context) []any {
	lc := extractLogContext(ctx)
	var attrs []any
	if lc.BuildID != "" {
		attrs = append(attrs, logfields.BuildID(lc.BuildID))
	}
	if lc.Stage != "" {
		attrs = append(attrs, logfields.Stage(lc.Stage))
	}
	if lc.Manifest != "" {
		attrs = append(attrs, logfields.Manifest(lc.Manifest))
	}
	return attrs
}

// Logger returns base (or the default logger) annotated with the context's
// build values.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	attrs := getLogAttrs(ctx)
	if len(attrs) == 0 {
		return base
	}
	return base.With(attrs...)
}
