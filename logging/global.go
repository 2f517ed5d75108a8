// Package logging wraps log/slog with a process-wide logger that writes
// text to the console and JSON to a rotating file.
package logging

import (
	"log/slog"
	"os"
)

// LoggingService owns the process logger and its file writer
type LoggingService struct {
	Logger *slog.Logger
	file   *RotatingLogger
}

// DefaultLoggingService is used by the package-level functions
var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger with default options.
// An empty logDir logs to the console only.
func InitLogger(logDir string) {
	InitLoggerWithOptions(Options{Dir: logDir})
}

// InitLoggerWithOptions initializes the global logger
func InitLoggerWithOptions(opts Options) {
	if DefaultLoggingService != nil {
		_ = DefaultLoggingService.Close()
	}

	logger, file := newLogger(opts)
	DefaultLoggingService = &LoggingService{
		Logger: logger,
		file:   file,
	}
	slog.SetDefault(logger)
}

// Close flushes and closes the log file, if any
func (s *LoggingService) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// Close closes the global logging service
func Close() error {
	return DefaultLoggingService.Close()
}

// logger returns the global logger, or a console fallback at the given
// level when InitLogger was not called
func logger(level slog.Level) *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logger(slog.LevelInfo).Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger(slog.LevelError).Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger(slog.LevelWarn).Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	logger(slog.LevelDebug).Debug(msg, args...)
}
