package internal

import (
	"io"
	"log/slog"
)

// NewLogger builds the application logger. Development gets human-readable
// text output; everything else gets JSON for log aggregation.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	logLevel := parseLogLevel(level)

	opts := &slog.HandlerOptions{
		Level: logLevel,
		// Call sites are only worth the overhead while debugging.
		AddSource: logLevel == slog.LevelDebug,
	}

	if env == "development" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
