package logger

import (
	"github.com/philipp01105/shedlog/core"
)

// Chainable modifiers. Each enqueues a command and returns the log; nothing
// takes effect until the log terminates.

// Label assigns the named label. While a Shed exists, logs with the same
// label name share its context, counter and timer.
func (l *Log) Label(name string) *Log {
	return l.Modifier(core.LabelModifier(name))
}

// Namespace adds namespaces to the log. Repeated calls accumulate.
func (l *Log) Namespace(ns ...string) *Log {
	return l.Modifier(core.NamespaceModifier(ns...))
}

// NS is shorthand for Namespace
func (l *Log) NS(ns ...string) *Log {
	return l.Namespace(ns...)
}

// Count increments the label's counter
func (l *Log) Count() *Log {
	return l.Modifier(core.Simple(core.ModCount))
}

// CountReset sets the label's counter to zero
func (l *Log) CountReset() *Log {
	return l.Modifier(core.Simple(core.ModCountReset))
}

// CountClear removes the label's counter
func (l *Log) CountClear() *Log {
	return l.Modifier(core.Simple(core.ModCountClear))
}

// Dump appends the label context to the rendered arguments
func (l *Log) Dump() *Log {
	return l.Modifier(core.Simple(core.ModDump))
}

// Meta attaches a value that listeners and machine-readable records see
func (l *Log) Meta(key string, value any) *Log {
	return l.Modifier(core.MetaModifier(key, value))
}

// Dir renders the arguments under the dir method
func (l *Log) Dir() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintDir))
}

// Dirxml renders the arguments under the dirxml method
func (l *Log) Dirxml() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintDirxml))
}

// Table renders the arguments under the table method
func (l *Log) Table() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintTable))
}

// Group opens an expanded group
func (l *Log) Group() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintGroup))
}

// GroupCollapsed opens a collapsed group
func (l *Log) GroupCollapsed() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintGroupCollapsed))
}

// GroupEnd closes the current group
func (l *Log) GroupEnd() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintGroupEnd))
}

// Trace renders under the trace method. The snapshot carries a stack trace
// only when CaptureStacktrace is set.
func (l *Log) Trace() *Log {
	return l.Modifier(core.PrintModeModifier(core.PrintTrace))
}

// Standout lets the log bypass the global filters
func (l *Log) Standout() *Log {
	return l.Modifier(core.Simple(core.ModStandout))
}

// Silent keeps the log from printing while still storing it and notifying
// listeners
func (l *Log) Silent() *Log {
	return l.Modifier(core.Simple(core.ModSilent))
}

// Assert prints the log only when ok is false
func (l *Log) Assert(ok bool) *Log {
	return l.Modifier(core.AssertModifier(ok))
}

// Test prints the log only when ok is true
func (l *Log) Test(ok bool) *Log {
	return l.Modifier(core.TestModifier(ok))
}

// Time starts the label's timer
func (l *Log) Time() *Log {
	return l.Modifier(core.Simple(core.ModTime))
}

// TimeEnd stops the label's timer and records the elapsed time
func (l *Log) TimeEnd() *Log {
	return l.Modifier(core.Simple(core.ModTimeEnd))
}

// TimeNow records the process uptime
func (l *Log) TimeNow() *Log {
	return l.Modifier(core.Simple(core.ModTimeNow))
}

// Timestamp shows the termination timestamp in the render
func (l *Log) Timestamp() *Log {
	return l.Modifier(core.Simple(core.ModTimestamp))
}
