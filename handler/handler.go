package handler

import (
	"github.com/philipp01105/shedlog/core"
)

// Handler is an output sink. It receives the render of every printed log.
// A sink that does not support a method must ignore it rather than fail.
type Handler interface {
	// Handle writes one render
	Handle(r core.Render) error

	// Close closes the handler and releases resources
	Close() error
}

// Func adapts a function to the Handler interface.
type Func func(r core.Render) error

// Handle calls f(r)
func (f Func) Handle(r core.Render) error {
	if f == nil {
		return nil
	}
	return f(r)
}

// Close is a no-op
func (f Func) Close() error {
	return nil
}

// Nop discards every render.
type Nop struct{}

// Handle does nothing
func (Nop) Handle(core.Render) error { return nil }

// Close does nothing
func (Nop) Close() error { return nil }

var (
	_ Handler = Func(nil)
	_ Handler = Nop{}
	_ Handler = (*MultiHandler)(nil)
	_ Handler = (*ZapHandler)(nil)
	_ Handler = (*SlogHandler)(nil)
)
