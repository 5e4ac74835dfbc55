package shed

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/env"
	"github.com/philipp01105/shedlog/filter"
	"github.com/philipp01105/shedlog/handler"
)

// RenderCache writes the stored render of every cached log within r to h
// again, oldest first, and returns the matched logs. Nothing is written in
// test mode.
func (s *Shed) RenderCache(r core.LevelRange, h handler.Handler) ([]core.Entry, error) {
	return replay(s.GetCollection(r), h)
}

// RenderNamespace is RenderCache restricted to logs tagged with any of ns.
func (s *Shed) RenderNamespace(r core.LevelRange, h handler.Handler, ns ...string) ([]core.Entry, error) {
	return replay(filter.Namespace(s.GetCollection(r), ns...), h)
}

// RenderLabel is RenderCache restricted to logs carrying the named label.
func (s *Shed) RenderLabel(r core.LevelRange, h handler.Handler, name string) ([]core.Entry, error) {
	return replay(filter.Label(s.GetCollection(r), name), h)
}

func replay(entries []core.Entry, h handler.Handler) ([]core.Entry, error) {
	if env.IsTest() {
		return entries, nil
	}
	var err error
	for _, e := range entries {
		err = multierr.Append(err, filter.Rerender(e, h))
	}
	return entries, err
}
