package shed

import (
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/label"
)

// DefaultCacheLimit is the cache capacity used when Config.CacheLimit is not
// positive.
const DefaultCacheLimit = 300

// ErrClosed is returned by operations on a Shed that has been closed.
var ErrClosed = errors.New("shed: closed")

// Listener receives every terminated log whose level it subscribed to,
// printed or not. data and render are copies owned by the listener.
type Listener func(data core.LogData, render *core.Render, printed bool)

// Config holds configuration for a Shed
type Config struct {
	// CacheLimit caps the number of cached logs (default: 300)
	CacheLimit int `yaml:"cacheLimit" mapstructure:"cachelimit"`
	// StrictExclude keeps exclude filters in force for standout logs
	StrictExclude bool `yaml:"strictExclude" mapstructure:"strictexclude"`
	// GlobalOverrides is merged over every log configuration created while
	// this Shed is in use, and wins over it.
	GlobalOverrides *core.Config `yaml:"globalOverrides,omitempty" mapstructure:"globaloverrides"`
	// AsyncDispatch delivers listener events from a background goroutine
	// instead of the terminating goroutine. Order is preserved.
	AsyncDispatch bool `yaml:"asyncDispatch" mapstructure:"asyncdispatch"`
	// DispatchBuffer is the async queue size (default: 1024)
	DispatchBuffer int `yaml:"dispatchBuffer" mapstructure:"dispatchbuffer"`
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[int]OverflowPolicy `yaml:"-" mapstructure:"-"`
	// BlockTimeout bounds how long the Block policy waits (default: 100ms)
	BlockTimeout time.Duration `yaml:"blockTimeout" mapstructure:"blocktimeout"`
	// DrainTimeout bounds how long Close waits for queued events (default: 5s)
	DrainTimeout time.Duration `yaml:"drainTimeout" mapstructure:"draintimeout"`
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.CacheLimit <= 0 {
		cfg.CacheLimit = DefaultCacheLimit
	}
	if cfg.DispatchBuffer <= 0 {
		cfg.DispatchBuffer = 1024
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// Shed is the log store: a FIFO cache of terminated logs, level-bucketed
// listeners, the label registry and the global configuration overrides.
//
// All methods are safe for concurrent use and safe to call on a nil *Shed,
// where they do nothing. After Close the Shed stops caching, sharing labels,
// applying overrides and dispatching.
type Shed struct {
	id        uuid.UUID
	cfg       Config
	overrides *core.Config

	mu        sync.Mutex
	cache     []core.Entry
	listeners map[int][]*listener
	labels    map[string]*label.Label
	nextID    uint64

	stats      Stats
	closed     atomic.Bool
	dispatcher *dispatcher
}

type listener struct {
	id     uint64
	levels []int
	fn     Listener
}

// New creates a Shed.
func New(cfg Config) *Shed {
	applyDefaults(&cfg)
	s := &Shed{
		id:        uuid.New(),
		cfg:       cfg,
		overrides: cfg.GlobalOverrides.Clone(),
		cache:     make([]core.Entry, 0, min(cfg.CacheLimit, 1024)),
		listeners: make(map[int][]*listener),
		labels:    make(map[string]*label.Label),
	}
	if cfg.AsyncDispatch {
		s.dispatcher = newDispatcher(s, cfg)
	}
	return s
}

// ID returns the Shed's unique identifier
func (s *Shed) ID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.id
}

// Active reports whether s is non-nil and not closed.
func (s *Shed) Active() bool {
	return s != nil && !s.closed.Load()
}

// CacheLimit returns the cache capacity
func (s *Shed) CacheLimit() int {
	if s == nil {
		return 0
	}
	return s.cfg.CacheLimit
}

// StrictExclude reports whether exclude filters apply to standout logs.
func (s *Shed) StrictExclude() bool {
	return s.Active() && s.cfg.StrictExclude
}

// HasOverrides reports whether global overrides are configured.
func (s *Shed) HasOverrides() bool {
	return s.Active() && s.overrides != nil
}

// Overrides returns a copy of the global overrides, or nil.
func (s *Shed) Overrides() *core.Config {
	if !s.Active() {
		return nil
	}
	return s.overrides.Clone()
}

// Store appends e to the cache, evicting the oldest entry first when the
// cache is full.
func (s *Shed) Store(e core.Entry) {
	if !s.Active() || e == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= s.cfg.CacheLimit {
		n := len(s.cache) - s.cfg.CacheLimit + 1
		clear(s.cache[:n])
		s.cache = append(s.cache[:0], s.cache[n:]...)
		s.stats.evicted.Add(uint64(n))
	}
	s.cache = append(s.cache, e)
	s.stats.stored.Inc()
}

// Len returns the number of cached logs
func (s *Shed) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Cache returns the cached logs in insertion order.
func (s *Shed) Cache() []core.Entry {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cache)
}

// GetCollection returns the cached logs whose level lies within r, in
// insertion order.
func (s *Shed) GetCollection(r core.LevelRange) []core.Entry {
	// Entries are inspected outside the lock: reading a log's data takes the
	// log's own lock, which may be held by a log that is storing itself.
	return lo.Filter(s.Cache(), func(e core.Entry, _ int) bool {
		d := e.Data()
		return d.Definition != nil && r.Contains(d.Level)
	})
}

// ClearCache empties the cache.
func (s *Shed) ClearCache() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.cache)
	s.cache = s.cache[:0]
}

// GetLabel returns the registered label with the given name.
func (s *Shed) GetLabel(name string) (*label.Label, bool) {
	if !s.Active() {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.labels[name]
	return l, ok
}

// AddLabel registers l, replacing any label with the same name.
func (s *Shed) AddLabel(l *label.Label) {
	if !s.Active() || l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[l.Name()] = l
}

// ResolveLabel returns the label registered under name, creating and
// registering it on first use. Without an active Shed it returns a fresh,
// unshared label.
func (s *Shed) ResolveLabel(name string) *label.Label {
	if !s.Active() {
		return label.New(name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.labels[name]; ok {
		return l
	}
	l := label.New(name)
	s.labels[name] = l
	return l
}

// LabelCount returns the number of registered labels
func (s *Shed) LabelCount() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.labels)
}

// Subscription identifies a registered listener.
type Subscription struct {
	shed *Shed
	l    *listener
	once sync.Once
}

// Close unregisters the listener. It is safe to call more than once.
func (sub *Subscription) Close() {
	if sub == nil || sub.shed == nil {
		return
	}
	sub.once.Do(func() {
		sub.shed.removeListener(sub.l)
	})
}

// AddListener registers fn for logs at any of the given levels. Listeners
// sharing a level are called in registration order.
func (s *Shed) AddListener(levels []int, fn Listener) (*Subscription, error) {
	if s == nil || s.closed.Load() {
		return nil, ErrClosed
	}
	if fn == nil {
		return nil, errors.New("shed: nil listener")
	}
	levels = lo.Uniq(levels)
	if len(levels) == 0 {
		return nil, errors.New("shed: listener needs at least one level")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	l := &listener{id: s.nextID, levels: levels, fn: fn}
	for _, lvl := range levels {
		s.listeners[lvl] = append(s.listeners[lvl], l)
	}
	return &Subscription{shed: s, l: l}, nil
}

func (s *Shed) removeListener(l *listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lvl := range l.levels {
		bucket := slices.DeleteFunc(s.listeners[lvl], func(x *listener) bool { return x == l })
		if len(bucket) == 0 {
			delete(s.listeners, lvl)
			continue
		}
		s.listeners[lvl] = bucket
	}
}

// ListenerCount returns the number of listeners subscribed to level.
func (s *Shed) ListenerCount(level int) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[level])
}

// event is one listener dispatch.
type event struct {
	data      core.LogData
	render    *core.Render
	printed   bool
	listeners []*listener
}

// FireListeners calls every listener subscribed to the log's level. A
// listener that panics is isolated: the panic is recovered, reported through
// core.Warn and returned combined with any other failures, and the remaining
// listeners still run. With async dispatch the call only enqueues and
// returns nil.
func (s *Shed) FireListeners(data core.LogData, render *core.Render, printed bool) error {
	if !s.Active() {
		return nil
	}
	s.mu.Lock()
	ls := slices.Clone(s.listeners[data.Level])
	s.mu.Unlock()
	if len(ls) == 0 {
		return nil
	}
	ev := event{data: data, render: render, printed: printed, listeners: ls}
	if s.dispatcher != nil {
		s.dispatcher.enqueue(ev)
		return nil
	}
	return s.dispatch(ev)
}

func (s *Shed) dispatch(ev event) error {
	var err error
	for _, l := range ev.listeners {
		err = multierr.Append(err, s.call(l, ev))
	}
	return err
}

func (s *Shed) call(l *listener, ev event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("listener %d panicked on level %d: %v", l.id, ev.data.Level, r)
			s.stats.listenerFailures.Inc()
			core.Warn("shed listener failed",
				zap.Stringer("shed", s.id),
				zap.Uint64("listener", l.id),
				zap.Int("level", ev.data.Level),
				zap.Error(err),
			)
		}
	}()
	s.stats.dispatched.Inc()
	l.fn(ev.data.Clone(), ev.render.Clone(), ev.printed)
	return nil
}

// Stats returns a snapshot of the Shed's counters.
func (s *Shed) Stats() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return s.stats.snapshot(s.Len())
}

// Close tears the Shed down: the cache, listeners and labels are dropped and
// queued async events are drained for up to DrainTimeout. Snapshots already
// taken from logs are unaffected.
func (s *Shed) Close() error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.dispatcher != nil {
		s.dispatcher.close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.cache)
	s.cache = s.cache[:0]
	clear(s.listeners)
	clear(s.labels)
	return nil
}
