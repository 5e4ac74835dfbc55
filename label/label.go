package label

import (
	"sync"
	"time"

	"github.com/philipp01105/shedlog/core"
)

// Label is a named record shared by every log that references it while a
// Shed exists. It carries an ordered context map, an optional counter and an
// optional timer. All methods are safe for concurrent use.
type Label struct {
	name string

	mu      sync.Mutex
	keys    []string
	values  map[string]any
	count   *int
	start   time.Time
	elapsed string
}

// New creates an empty label.
func New(name string) *Label {
	return &Label{name: name, values: make(map[string]any)}
}

// Name returns the label name
func (l *Label) Name() string {
	return l.name
}

// AddContext sets key to value. Existing keys keep their position.
func (l *Label) AddContext(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.values[key] = value
}

// ClearContext empties the context in place. The label itself survives.
func (l *Label) ClearContext() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = l.keys[:0]
	clear(l.values)
}

// Context returns a copy of the context in insertion order.
func (l *Label) Context() []core.ContextEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.ContextEntry, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, core.ContextEntry{Key: k, Value: l.values[k]})
	}
	return out
}

// AddCount increments the counter, starting it at 1.
func (l *Label) AddCount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == nil {
		n := 1
		l.count = &n
		return
	}
	*l.count++
}

// ResetCount sets the counter to zero.
func (l *Label) ResetCount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	l.count = &n
}

// ClearCount removes the counter so it is no longer rendered.
func (l *Label) ClearCount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count = nil
}

// Count returns a copy of the counter, or nil when it is not set.
func (l *Label) Count() *int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == nil {
		return nil
	}
	n := *l.count
	return &n
}

// StartTime starts the timer.
func (l *Label) StartTime() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.start = core.Now()
}

// EndTime stops the timer and records the elapsed time. It does nothing if
// the timer was never started.
func (l *Label) EndTime() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.start.IsZero() {
		return
	}
	l.elapsed = core.FormatDuration(core.Now().Sub(l.start))
}

// TimeElapsed returns the duration recorded by the last EndTime, or "".
func (l *Label) TimeElapsed() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.elapsed
}

// Snapshot returns the label fields captured into log data.
func (l *Label) Snapshot() core.LabelData {
	if l == nil {
		return core.LabelData{}
	}
	return core.LabelData{
		Name:        l.name,
		TimeElapsed: l.TimeElapsed(),
		Count:       l.Count(),
	}
}
