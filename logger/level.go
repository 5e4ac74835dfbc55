package logger

import (
	"github.com/philipp01105/shedlog/core"
)

// Terminators. Each resolves a level by name and terminates the log there.
// A log terminates once; later calls return the first result.

// Alert terminates at the alert level (0)
func (l *Log) Alert(args ...any) Terminated {
	return l.Terminate(core.LevelAlert, args...)
}

// Error terminates at the error level (1)
func (l *Log) Error(args ...any) Terminated {
	return l.Terminate(core.LevelError, args...)
}

// Warn terminates at the warn level (2)
func (l *Log) Warn(args ...any) Terminated {
	return l.Terminate(core.LevelWarn, args...)
}

// Info terminates at the info level (3)
func (l *Log) Info(args ...any) Terminated {
	return l.Terminate(core.LevelInfo, args...)
}

// Fail terminates at the fail level (4)
func (l *Log) Fail(args ...any) Terminated {
	return l.Terminate(core.LevelFail, args...)
}

// Success terminates at the success level (5)
func (l *Log) Success(args ...any) Terminated {
	return l.Terminate(core.LevelSuccess, args...)
}

// Log terminates at the log level (6)
func (l *Log) Log(args ...any) Terminated {
	return l.Terminate(core.LevelLog, args...)
}

// Debug terminates at the debug level (7)
func (l *Log) Debug(args ...any) Terminated {
	return l.Terminate(core.LevelDebug, args...)
}

// Verbose terminates at the verbose level (8)
func (l *Log) Verbose(args ...any) Terminated {
	return l.Terminate(core.LevelVerbose, args...)
}

// Terminate terminates at the named level from the log's level table. An
// unknown name leaves the log unterminated and returns no render.
func (l *Log) Terminate(levelName string, args ...any) Terminated {
	l.mu.Lock()
	def, ok := l.settings.Definition(levelName)
	l.mu.Unlock()
	return l.terminate(def, ok, args)
}

// Custom terminates at the named custom level.
func (l *Log) Custom(levelName string, args ...any) Terminated {
	l.mu.Lock()
	def, ok := l.settings.CustomDefinition(levelName)
	l.mu.Unlock()
	return l.terminate(def, ok, args)
}
