// Package logging provides structured logging for the chunk type tools.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/jmgilman/go/errors"
)

// LogLevel represents different logging levels
type LogLevel int

// Logging levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// LogFormat selects the slog handler.
type LogFormat string

// Supported formats.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// Format selects text or JSON records
	Format LogFormat
	// EnableCallerInfo includes file and line number in logs
	EnableCallerInfo bool
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelWarn,
		Format: LogFormatText,
	}
}

// Logger wraps slog with context-taking methods. A nil *Logger and the
// logger returned by NewNopLogger discard everything.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a logger writing to w with the given configuration.
func NewLogger(w io.Writer, config LogConfig) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.EnableCallerInfo,
	}

	var handler slog.Handler
	if config.Format == LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{logger: slog.New(handler)}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

// FromSlog wraps an existing slog logger. A nil logger yields a no-op Logger.
func FromSlog(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Slog returns the underlying slog logger, or nil for a no-op Logger.
func (l *Logger) Slog() *slog.Logger {
	if l == nil {
		return nil
	}
	return l.logger
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.InfoContext(ctx, msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.WarnContext(ctx, msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.ErrorContext(ctx, msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation Operation) *Logger {
	return l.With("operation", string(operation))
}

// WithChunkType returns a logger with chunk type context
func (l *Logger) WithChunkType(chunkType string) *Logger {
	return l.With("chunk_type", chunkType)
}

// Operation names the unit of work a log record belongs to.
type Operation string

// Operation constants
const (
	OpParse       Operation = "parse"
	OpEvaluate    Operation = "evaluate"
	OpLoadPolicy  Operation = "load_policy"
	OpBuildPolicy Operation = "build_policy"
)

// LogOperation logs the outcome of an operation. Failures are logged at
// warn level with the error attached.
func LogOperation(ctx context.Context, logger *Logger, operation Operation, err error, fields ...any) {
	if logger == nil {
		return
	}

	args := append([]any{"operation", string(operation), "success", err == nil}, fields...)
	if err != nil {
		args = append(args, "error", err.Error(), "error_code", string(errors.GetCode(err)))
		logger.Warn(ctx, "operation failed", args...)
		return
	}
	logger.Debug(ctx, "operation completed", args...)
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, errors.Newf(errors.CodeInvalidInput, "invalid log level: %s", level)
	}
}

// ParseLogFormat parses a string into a LogFormat.
func ParseLogFormat(format string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(format)) {
	case LogFormatText:
		return LogFormatText, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	default:
		return LogFormatText, errors.Newf(errors.CodeInvalidInput, "invalid log format: %s", format)
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
