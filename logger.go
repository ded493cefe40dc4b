package flatvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(index, dimension int, err error) {
	if err != nil {
		l.Error("add failed",
			"index", index,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"index", index,
			"dimension", dimension,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(k, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogSave logs a snapshot save operation.
func (l *Logger) LogSave(name string, entries int, err error) {
	if err != nil {
		l.Error("save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"name", name,
			"entries", entries,
		)
	}
}

// LogLoad logs a snapshot load operation.
func (l *Logger) LogLoad(name string, loaded bool, entries int, err error) {
	switch {
	case err != nil:
		l.Error("load failed",
			"name", name,
			"error", err,
		)
	case !loaded:
		l.Debug("snapshot not found",
			"name", name,
		)
	default:
		l.Info("snapshot loaded",
			"name", name,
			"entries", entries,
		)
	}
}

// LogDelete logs a snapshot delete operation.
func (l *Logger) LogDelete(name string, err error) {
	if err != nil {
		l.Error("delete failed",
			"name", name,
			"error", err,
		)
	} else {
		l.Debug("delete completed",
			"name", name,
		)
	}
}
