package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/shedlog/core"
)

// MultiHandler sends every render to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler. Nil handlers are skipped.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{handlers: make([]Handler, 0, len(handlers))}
	for _, h := range handlers {
		if h != nil {
			m.handlers = append(m.handlers, h)
		}
	}
	return m
}

// Handle sends r to every handler. A failing handler does not stop the
// others; all errors are combined.
func (h *MultiHandler) Handle(r core.Render) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(r))
	}
	return err
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
