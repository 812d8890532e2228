// Package ctxlog carries the application's slog.Logger through
// context.Context.
//
// Loaders and resolvers are also called directly, from tests and from the
// dispatcher, with contexts that never passed through app.NewApp. FromContext
// therefore falls back to slog.Default() instead of failing, so those callers
// still log through whatever handler the process installed in main.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context, or slog.Default()
// when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
