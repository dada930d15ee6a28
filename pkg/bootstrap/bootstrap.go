// Package bootstrap wires up process-level dependencies shared by the
// application entrypoint.
package bootstrap

import (
	"log/slog"
	"os"

	"github.com/FiatTy/Projectjannong/pkg/logger"
)

// NewLogger creates a new slog.Logger instance with the specified log
// level. Records pick up the request id from the context when present.
func NewLogger(level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(os.Stdout, loggerOpts)
	return slog.New(logger.NewContextHandler(logHandler))
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
