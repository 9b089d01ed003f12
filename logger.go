package vecq

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecq-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (result limit) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithTarget adds the quantization target to the logger.
func (l *Logger) WithTarget(target string) *Logger {
	return &Logger{
		Logger: l.Logger.With("target", target),
	}
}

// LogAdd logs a sparse vector add.
func (l *Logger) LogAdd(ctx context.Context, id uint32, nnz int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add failed",
			"id", id,
			"nnz", nnz,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "add completed",
			"id", id,
			"nnz", nnz,
		)
	}
}

// LogBatchAdd logs a batch add operation.
func (l *Logger) LogBatchAdd(ctx context.Context, count int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch add failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch add completed",
			"count", count,
		)
	}
}

// LogSearch logs a sparse search.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogQuantize logs a quantization.
func (l *Logger) LogQuantize(ctx context.Context, target string, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quantize failed",
			"target", target,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "quantize completed",
			"target", target,
			"dimension", dimension,
		)
	}
}

// LogTrain logs a strategy training run.
func (l *Logger) LogTrain(ctx context.Context, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "training failed",
			"samples", samples,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "training completed",
			"samples", samples,
		)
	}
}

// LogSimilarity logs a similarity between two representations.
func (l *Logger) LogSimilarity(ctx context.Context, kind string, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "similarity failed",
			"kind", kind,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "similarity completed",
			"kind", kind,
			"dimension", dimension,
		)
	}
}

// LogTrace logs one per-plane similarity event at debug level.
func (l *Logger) LogTrace(op string, plane int, count uint64) {
	l.Debug("similarity plane",
		"op", op,
		"plane", plane,
		"count", count,
	)
}
