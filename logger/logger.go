package logger

import (
	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/env"
	"github.com/philipp01105/shedlog/handler"
	"github.com/philipp01105/shedlog/handler/consolehandler"
	"github.com/philipp01105/shedlog/printer"
	"github.com/philipp01105/shedlog/shed"
)

// Logger is a log factory (immutable). It carries the configuration merged
// into every log it creates, the output sink printed renders go to, and
// optionally a specific Shed and printer.
type Logger struct {
	cfg     *core.Config
	handler handler.Handler
	printer printer.Printer
	shed    *shed.Shed
	env     env.Descriptor
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	cfg     *core.Config
	handler handler.Handler
	printer printer.Printer
	shed    *shed.Shed
	env     *env.Descriptor
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithConfig sets the configuration merged over the defaults for every log
func (b *Builder) WithConfig(cfg *core.Config) *Builder {
	b.cfg = cfg.Clone()
	return b
}

// WithHandler sets the output sink (default: console on stdout/stderr)
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithPrinter fixes the printer instead of selecting one per log from the
// environment and settings
func (b *Builder) WithPrinter(p printer.Printer) *Builder {
	b.printer = p
	return b
}

// WithShed binds the logger to s instead of the process-wide Shed
func (b *Builder) WithShed(s *shed.Shed) *Builder {
	b.shed = s
	return b
}

// WithEnv sets the environment descriptor used for printer selection
// (default: env.Detect())
func (b *Builder) WithEnv(d env.Descriptor) *Builder {
	b.env = &d
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	l := &Logger{
		cfg:     b.cfg,
		handler: b.handler,
		printer: b.printer,
		shed:    b.shed,
	}
	if l.handler == nil {
		l.handler = consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{})
	}
	if b.env != nil {
		l.env = *b.env
	} else {
		l.env = env.Detect()
	}
	return l
}

// New creates a log. Settings are the defaults, then the logger's
// configuration, then cfgs in order, then the Shed's global overrides.
func (l *Logger) New(cfgs ...*core.Config) *Log {
	s := l.currentShed()
	settings := core.Resolve(append([]*core.Config{l.cfg}, cfgs...)...)
	if s.HasOverrides() {
		settings = settings.Merge(s.Overrides())
	}
	return newLog(l, settings)
}

// Shed returns the Shed logs of this logger store into, or nil.
func (l *Logger) Shed() *shed.Shed {
	return l.currentShed()
}

// currentShed returns the bound Shed, falling back to the process-wide one.
func (l *Logger) currentShed() *shed.Shed {
	if l.shed != nil {
		return l.shed
	}
	return shed.Current()
}

func (l *Logger) printerFor(s core.Settings) printer.Printer {
	if l.printer != nil {
		return l.printer
	}
	return printer.Select(l.env, s)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
