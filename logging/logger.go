// Package logging provides the structured logger used by segseq containers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with segseq-specific helpers.
// Field names are consistent across containers: slot, handle, length, total.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithContainer tags every record with the container name.
func (l *Logger) WithContainer(name string) *Logger {
	return &Logger{Logger: l.Logger.With("container", name)}
}

// WithSlot adds a slot field.
func (l *Logger) WithSlot(slot int) *Logger {
	return &Logger{Logger: l.Logger.With("slot", slot)}
}

// LogAppend logs a segment append.
func (l *Logger) LogAppend(ctx context.Context, handle uint64, slot, length, total int) {
	l.DebugContext(ctx, "segment appended",
		"handle", handle,
		"slot", slot,
		"length", length,
		"total", total,
	)
}

// LogRemove logs a segment removal.
func (l *Logger) LogRemove(ctx context.Context, handle uint64, slot int, err error) {
	if err != nil {
		l.DebugContext(ctx, "segment removal rejected",
			"handle", handle,
			"slot", slot,
			"error", err,
		)

		return
	}
	l.DebugContext(ctx, "segment removed",
		"handle", handle,
		"slot", slot,
	)
}

// LogReplace logs a slot replacement.
func (l *Logger) LogReplace(ctx context.Context, handle uint64, slot, length, total int, adjusted bool) {
	l.DebugContext(ctx, "slot replaced",
		"handle", handle,
		"slot", slot,
		"length", length,
		"total", total,
		"index_adjusted", adjusted,
	)
}

// LogReindex logs a prefix index rebuild.
func (l *Logger) LogReindex(ctx context.Context, before, after int) {
	l.DebugContext(ctx, "prefix index rebuilt",
		"total_before", before,
		"total_after", after,
	)
}

// LogClose logs container teardown.
func (l *Logger) LogClose(ctx context.Context, released int) {
	l.DebugContext(ctx, "container closed",
		"segments_released", released,
	)
}

// LogSnapshot logs a snapshot encode or decode.
func (l *Logger) LogSnapshot(ctx context.Context, op string, count, payloadSize, blobSize int) {
	l.DebugContext(ctx, "snapshot "+op,
		"elements", count,
		"payload_bytes", payloadSize,
		"blob_bytes", blobSize,
	)
}

// LogInvariant logs an internal invariant violation.
func (l *Logger) LogInvariant(ctx context.Context, slot int, err error) {
	l.ErrorContext(ctx, "invariant violated",
		"slot", slot,
		"error", err,
	)
}
