package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx retrieves the logger from the context, falling back to the global one.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}

// WithRun derives a child of the context logger tagged with the run and
// command it belongs to, and stores it back in the returned context.
func WithRun(ctx context.Context, runID, command string) context.Context {
	l := Ctx(ctx).With().
		Str(FieldRunID, runID).
		Str(FieldCommand, command).
		Logger()
	return WithLogger(ctx, l)
}
