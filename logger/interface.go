package logger

import (
	"context"
	"time"
)

// LogLevel defines log levels
type LogLevel int

const (
	// Silent disables all logging
	Silent LogLevel = iota + 1
	// Error logs only errors
	Error
	// Warn logs warnings and errors
	Warn
	// Info logs info, warnings and errors
	Info
	// Debug logs all messages
	Debug
)

// String returns the string representation of log level
func (l LogLevel) String() string {
	switch l {
	case Silent:
		return "silent"
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name (as found in LOG_LEVEL) into a LogLevel.
// Unknown names fall back to Info.
func ParseLevel(name string) LogLevel {
	switch name {
	case "silent", "SILENT":
		return Silent
	case "error", "ERROR":
		return Error
	case "warn", "warning", "WARN", "WARNING":
		return Warn
	case "debug", "DEBUG":
		return Debug
	default:
		return Info
	}
}

// Interface defines the logger interface used across metahub.
// It follows GORM's logger interface design pattern.
type Interface interface {
	// LogMode sets the log level and returns a new logger instance
	LogMode(level LogLevel) Interface

	// Info logs info messages
	Info(ctx context.Context, msg string, data ...interface{})

	// Warn logs warning messages
	Warn(ctx context.Context, msg string, data ...interface{})

	// Error logs error messages
	Error(ctx context.Context, msg string, data ...interface{})

	// Debug logs debug messages
	Debug(ctx context.Context, msg string, data ...interface{})

	// Trace logs dispatch operations with duration, like GORM's SQL trace.
	// fc resolves lazily to the operation name and the platform it ran on.
	Trace(ctx context.Context, begin time.Time, fc func() (operation string, platform string), err error)
}

// Writer defines the interface for log output
type Writer interface {
	Printf(string, ...interface{})
}

// Config defines logger configuration
type Config struct {
	SlowThreshold time.Duration // Slow dispatch threshold
	LogLevel      LogLevel      // Log level
	Colorful      bool          // Enable color output
}

// Colors for console output
const (
	Reset       = "\033[0m"
	Red         = "\033[31m"
	Green       = "\033[32m"
	Yellow      = "\033[33m"
	Blue        = "\033[34m"
	Magenta     = "\033[35m"
	White       = "\033[37m"
	BlueBold    = "\033[34;1m"
	MagentaBold = "\033[35;1m"
	RedBold     = "\033[31;1m"
)

// Predefined loggers
var (
	// Discard discards all log messages
	Discard Interface = New(discardWriter{}, Config{LogLevel: Silent})

	// Default writes to stderr via the standard log package. Stdout is
	// reserved for the MCP stdio transport.
	Default Interface = New(stdWriter{}, Config{
		SlowThreshold: time.Second,
		LogLevel:      Info,
		Colorful:      false,
	})
)

// discardWriter discards all output
type discardWriter struct{}

func (discardWriter) Printf(string, ...interface{}) {}
