// Package logging defines the small structured-logging interface shared by
// the server and the station. Implementations can wrap slog or any other
// structured backend.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key–value pairs:
//
//	log.Info(ctx, "station activated", "station_id", id)
type Logger interface {
	// Debug logs high-volume diagnostics, such as per-request or per-flush
	// traces. Suppressed by default with slog's standard level setup.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given key–value pairs.
	With(args ...any) Logger
}
