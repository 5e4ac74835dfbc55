package benchmark

import (
	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/handler"
)

// noopHandler touches the render so the printer's work is not optimized away.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(r core.Render) error {
	_ = len(r.Args)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
