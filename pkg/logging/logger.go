// Package logging provides the structured JSON logger used across the lead
// agent. Every entry carries a service attribute so agent, webhook and model
// logs can be filtered together downstream.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

const serviceName = "lead-agent"

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger at the given level. Unrecognized levels fall
// back to info rather than failing startup.
func New(level string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler).With("service", serviceName)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns an info-level logger.
func Default() *Logger {
	return New("info")
}

// With returns a child logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}
