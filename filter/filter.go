package filter

import (
	"github.com/samber/lo"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/handler"
)

// Collection keeps the entries whose snapshot satisfies keep, preserving
// order.
func Collection[E core.Entry](seq []E, keep func(core.LogData) bool) []E {
	return lo.Filter(seq, func(e E, _ int) bool {
		return keep(e.Data())
	})
}

// Namespace keeps entries carrying at least one of the given namespaces.
func Namespace[E core.Entry](seq []E, ns ...string) []E {
	return Collection(seq, func(d core.LogData) bool {
		return lo.Some(d.Namespace, ns)
	})
}

// Label keeps entries labeled name.
func Label[E core.Entry](seq []E, name string) []E {
	return Collection(seq, func(d core.LogData) bool {
		return d.Label.Name != "" && d.Label.Name == name
	})
}

// Level keeps terminated entries whose level lies in the closed range
// [low, high].
func Level[E core.Entry](seq []E, low, high int) []E {
	r := core.Levels(low, high)
	return Collection(seq, func(d core.LogData) bool {
		return d.Definition != nil && r.Contains(d.Level)
	})
}

// InRange is Level with a prepared range.
func InRange[E core.Entry](seq []E, r core.LevelRange) []E {
	return Level(seq, r.Low, r.High)
}

// LevelNames keeps terminated entries at any of the named levels. Names are
// resolved against each entry's own settings, since custom levels may
// assign different numbers per log.
func LevelNames[E core.Entry](seq []E, names ...string) []E {
	return Collection(seq, func(d core.LogData) bool {
		if d.Definition == nil {
			return false
		}
		return lo.ContainsBy(names, func(name string) bool {
			n, ok := d.Settings.LevelNumber(name)
			return ok && n == d.Level
		})
	})
}

// Rerender writes the entry's previous render to h again. Entries that
// never rendered are skipped.
func Rerender(e core.Entry, h handler.Handler) error {
	r := e.Render()
	if r == nil || h == nil {
		return nil
	}
	return h.Handle(*r)
}
