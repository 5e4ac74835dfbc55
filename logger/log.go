package logger

import (
	"maps"
	"runtime/debug"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/filter"
	"github.com/philipp01105/shedlog/label"
)

// Terminated is the result of a terminator.
type Terminated struct {
	Log *Log
	// Render is nil when the level was unknown or the printer had nothing
	// to output.
	Render  *core.Render
	Printed bool
}

// Log is one log under construction. Modifiers only enqueue commands; the
// queue runs once, when the log terminates (or is threaded), and the
// resulting snapshot never changes afterwards.
//
// A Log is meant to be built and terminated by one goroutine, but every
// method is safe for concurrent use.
type Log struct {
	logger *Logger

	mu       sync.Mutex
	settings core.Settings
	queue    []core.Modifier
	executed bool

	// state written by the modifier queue
	namespace     []string
	label         *label.Label
	meta          map[string]any
	mode          core.PrintMode
	assertion     *bool
	expression    *bool
	dumpContext   bool
	silent        bool
	standout      bool
	showTimestamp bool
	timeNow       string

	// set on termination
	terminated bool
	snapshot   core.LogData
	render     *core.Render
	printed    bool
}

func newLog(owner *Logger, settings core.Settings) *Log {
	return &Log{
		logger:   owner,
		settings: settings,
		meta:     maps.Clone(settings.Meta),
	}
}

// Modifier enqueues m. Label assignments are queued ahead of every other
// modifier so the rest can rely on the label.
func (l *Log) Modifier(m core.Modifier) *Log {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m.Prepended() {
		l.queue = slices.Insert(l.queue, 0, m)
	} else {
		l.queue = append(l.queue, m)
	}
	return l
}

// runQueue applies the queued modifiers once. Must hold l.mu.
func (l *Log) runQueue() {
	if l.executed {
		return
	}
	l.executed = true
	for _, m := range l.queue {
		l.apply(m)
	}
}

func (l *Log) apply(m core.Modifier) {
	switch m.Kind {
	case core.ModLabel:
		l.label = l.logger.currentShed().ResolveLabel(m.Name)
	case core.ModNamespace:
		l.namespace = append(l.namespace, m.Names...)
	case core.ModCount:
		if l.label != nil {
			l.label.AddCount()
		}
	case core.ModCountReset:
		if l.label != nil {
			l.label.ResetCount()
		}
	case core.ModCountClear:
		if l.label != nil {
			l.label.ClearCount()
		}
	case core.ModDump:
		l.dumpContext = true
	case core.ModMeta:
		if l.meta == nil {
			l.meta = make(map[string]any)
		}
		l.meta[m.Key] = m.Value
	case core.ModPrintMode:
		l.mode = m.Mode
	case core.ModStandout:
		l.standout = true
	case core.ModSilent:
		l.silent = true
	case core.ModAssert:
		ok := m.Flag
		l.assertion = &ok
	case core.ModTest:
		ok := m.Flag
		l.expression = &ok
	case core.ModTime:
		if l.label != nil {
			l.label.StartTime()
		}
	case core.ModTimeEnd:
		if l.label != nil {
			l.label.EndTime()
		}
	case core.ModTimeNow:
		l.timeNow = core.FormatDuration(core.Uptime())
	case core.ModTimestamp:
		l.showTimestamp = true
	}
}

// build assembles a snapshot of the current state. Must hold l.mu.
func (l *Log) build() core.LogData {
	d := core.LogData{
		Settings:      l.settings.Clone(),
		Namespace:     slices.Clone(l.namespace),
		Label:         l.label.Snapshot(),
		Assertion:     l.assertion,
		Expression:    l.expression,
		DumpContext:   l.dumpContext,
		IsSilent:      l.silent,
		IsStandout:    l.standout,
		ShowTimestamp: l.showTimestamp,
		TimeNow:       l.timeNow,
		Meta:          maps.Clone(l.meta),
		PrintMode:     l.mode,
		Modifiers:     slices.Clone(l.queue),
	}
	if l.label != nil {
		d.Context = l.label.Context()
	}
	return d.Clone()
}

// terminate resolves def and runs the termination pipeline: queue, snapshot,
// render, filters, output, store and listeners.
func (l *Log) terminate(def core.LevelDefinition, ok bool, args []any) Terminated {
	l.mu.Lock()
	if l.terminated {
		defer l.mu.Unlock()
		return l.result()
	}
	if !ok {
		l.mu.Unlock()
		return Terminated{Log: l}
	}

	l.runQueue()
	s := l.logger.currentShed()

	d := l.build()
	d.Level = def.Level
	d.Definition = &def
	d.Args = slices.Clone(args)
	ts := core.NewTimestamp(core.Now())
	d.Timestamp = &ts
	d.Terminated = true
	if l.settings.CaptureStacktrace {
		d.Stacktrace = string(debug.Stack())
	}

	l.render = l.logger.printerFor(d.Settings).Print(d.Clone())
	l.printed = filter.Allowed(d, s.StrictExclude()) && l.evalPasses(def)
	d.Printed = l.printed
	l.snapshot = d
	l.terminated = true
	res := l.result()
	l.mu.Unlock()

	if res.Printed && res.Render != nil {
		if err := l.logger.handler.Handle(*res.Render); err != nil {
			core.Warn("output sink failed", zap.String("level", def.Name), zap.Error(err))
		}
	}
	s.Store(l)
	// failures are reported per listener by the Shed
	_ = s.FireListeners(d, res.Render, res.Printed)
	return res
}

// result must hold l.mu.
func (l *Log) result() Terminated {
	return Terminated{Log: l, Render: l.render.Clone(), Printed: l.printed}
}

// evalPasses decides whether assertion and test modifiers let the log print.
// An assertion surfaces failures, a test surfaces successes; declaring both
// warns and passes.
func (l *Log) evalPasses(def core.LevelDefinition) bool {
	switch {
	case l.assertion != nil && l.expression != nil:
		core.Warn("both an assertion and a test are declared on the same log; only declare one",
			zap.String("level", def.Name))
		return true
	case l.assertion != nil:
		return !*l.assertion
	case l.expression != nil:
		return *l.expression
	default:
		return true
	}
}

// Thread runs the modifier queue and adds key/value to the log's label
// context, so later logs with the same label see it while a Shed exists.
// Without a label it only warns.
func (l *Log) Thread(key string, value any) {
	lbl := l.threadLabel()
	if lbl == nil {
		core.Warn("thread context was not added; threads must have a label", zap.String("key", key))
		return
	}
	lbl.AddContext(key, value)
}

// CloseThread runs the modifier queue and clears the label's context. The
// label itself stays registered.
func (l *Log) CloseThread() {
	lbl := l.threadLabel()
	if lbl == nil {
		core.Warn("thread was not closed; threads must have a label")
		return
	}
	lbl.ClearContext()
}

func (l *Log) threadLabel() *label.Label {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runQueue()
	return l.label
}

// Data returns a snapshot of the log. Once terminated the snapshot is fixed;
// before that it reflects the state built so far.
func (l *Log) Data() core.LogData {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.terminated {
		return l.snapshot.Clone()
	}
	return l.build()
}

// Render returns a copy of the render computed at termination, or nil.
func (l *Log) Render() *core.Render {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.render.Clone()
}

// Printed reports whether the log was written to the output sink.
func (l *Log) Printed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.printed
}

// Terminated reports whether the log has terminated.
func (l *Log) Terminated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.terminated
}

// Context returns the label context captured at termination, or the live
// label context before that.
func (l *Log) Context() map[string]any {
	return l.Data().ContextMap()
}

// Seal returns a factory of new logs sharing this log's merged settings and
// a copy of its modifier queue.
func (l *Log) Seal() func() *Log {
	return func() *Log {
		return l.derive()
	}
}

// derive creates an unterminated log with l's settings and modifier queue.
func (l *Log) derive() *Log {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := newLog(l.logger, l.settings.Clone())
	n.queue = slices.Clone(l.queue)
	return n
}

var _ core.Entry = (*Log)(nil)
