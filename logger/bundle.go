package logger

import (
	"slices"
	"sync"
)

// Bundle collects the logs created through it in creation order. A log is
// added when it is created, so logs that never terminate can still be
// inspected. A Bundle does not need a Shed; its logs are still stored in one
// when a Shed exists.
type Bundle struct {
	source func() *Log

	mu   sync.Mutex
	logs []*Log
}

// NewBundle creates a bundle whose logs share src's settings and modifier
// queue.
func NewBundle(src *Log) *Bundle {
	return &Bundle{source: func() *Log { return src }}
}

// NewBundleFunc creates a bundle that takes the settings and modifier queue
// of a fresh source log from fn for every new log.
func NewBundleFunc(fn func() *Log) *Bundle {
	return &Bundle{source: fn}
}

// New creates a log and appends it to the bundle.
func (b *Bundle) New() *Log {
	l := b.source().derive()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs = append(b.logs, l)
	return l
}

// Logs returns the bundled logs in creation order
func (b *Bundle) Logs() []*Log {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.logs)
}

// Len returns the number of bundled logs
func (b *Bundle) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.logs)
}
