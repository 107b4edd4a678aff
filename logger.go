package sketchdist

import (
	"log/slog"
	"os"

	"github.com/hupe1980/sketchdist/join"
)

// Logger wraps slog.Logger with sketchdist-specific context.
// This provides structured logging with consistent field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(join.DiscardHandler{}),
	}
}

// WithRound adds a round field to the logger (useful for tagging a
// processing round of the reference collection).
func (l *Logger) WithRound(round, rounds int) *Logger {
	return &Logger{
		Logger: l.Logger.With("round", round, "rounds", rounds),
	}
}

// WithQuery adds a query sketch index field to the logger.
func (l *Logger) WithQuery(index int) *Logger {
	return &Logger{
		Logger: l.Logger.With("query", index),
	}
}
