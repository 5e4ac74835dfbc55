package logger

import (
	"go.uber.org/atomic"

	"github.com/philipp01105/shedlog/core"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewBuilder().Build())
}

// Default returns the default logger
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault sets the default logger. A nil logger is ignored.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(l)
}

// Package-level convenience functions using the default logger

// New creates a log from the default logger
func New(cfgs ...*core.Config) *Log {
	return Default().New(cfgs...)
}

// Label creates a log from the default logger with the named label
func Label(name string) *Log {
	return New().Label(name)
}

// Namespace creates a log from the default logger with the given namespaces
func Namespace(ns ...string) *Log {
	return New().Namespace(ns...)
}

// Alert logs at the alert level using the default logger
func Alert(args ...any) Terminated {
	return New().Alert(args...)
}

// Error logs at the error level using the default logger
func Error(args ...any) Terminated {
	return New().Error(args...)
}

// Warn logs at the warn level using the default logger
func Warn(args ...any) Terminated {
	return New().Warn(args...)
}

// Info logs at the info level using the default logger
func Info(args ...any) Terminated {
	return New().Info(args...)
}

// Fail logs at the fail level using the default logger
func Fail(args ...any) Terminated {
	return New().Fail(args...)
}

// Success logs at the success level using the default logger
func Success(args ...any) Terminated {
	return New().Success(args...)
}

// Debug logs at the debug level using the default logger
func Debug(args ...any) Terminated {
	return New().Debug(args...)
}

// Verbose logs at the verbose level using the default logger
func Verbose(args ...any) Terminated {
	return New().Verbose(args...)
}
