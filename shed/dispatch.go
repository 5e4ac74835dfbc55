package shed

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/philipp01105/shedlog/core"
)

// dispatcher delivers listener events from a single background goroutine,
// so listeners observe logs in termination order.
type dispatcher struct {
	shed  *Shed
	queue chan event

	// mu is held shared by senders and exclusively by close, so no event
	// lands in the queue after the drain has started.
	mu        sync.RWMutex
	stopped   bool
	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	// inListener is set while process runs listeners.
	inListener atomic.Bool

	overflowPolicy map[int]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
}

func newDispatcher(s *Shed, cfg Config) *dispatcher {
	d := &dispatcher{
		shed:           s,
		queue:          make(chan event, cfg.DispatchBuffer),
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
	}
	d.wg.Add(1)
	go d.process()
	return d
}

// enqueue hands ev to the background goroutine, applying the level's
// overflow policy when the queue is full. Events arriving after close are
// dropped.
func (d *dispatcher) enqueue(ev event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.drop(ev, "shed closed, event dropped")
		return
	}

	policy, ok := d.overflowPolicy[ev.data.Level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case d.queue <- ev:
			return
		default:
		}
		d.shed.stats.blocked.Inc()
		timer := time.NewTimer(d.blockTimeout)
		defer timer.Stop()
		select {
		case d.queue <- ev:
		case <-timer.C:
			d.drop(ev, queueFull)
		}

	case DropOldest:
		select {
		case d.queue <- ev:
			return
		default:
		}
		select {
		case old := <-d.queue:
			d.drop(old, queueFull)
		default:
		}
		select {
		case d.queue <- ev:
		default:
			d.drop(ev, queueFull)
		}

	default:
		select {
		case d.queue <- ev:
		default:
			d.drop(ev, queueFull)
		}
	}
}

const queueFull = "shed dispatch queue full, event dropped"

func (d *dispatcher) drop(ev event, msg string) {
	d.shed.stats.dropped.Inc()
	core.Warn(msg,
		zap.Stringer("shed", d.shed.id),
		zap.Int("level", ev.data.Level),
	)
}

func (d *dispatcher) process() {
	defer d.wg.Done()

	for {
		select {
		case ev := <-d.queue:
			d.run(ev)
		case <-d.closed:
			deadline := time.After(d.drainTimeout)
			for {
				select {
				case ev := <-d.queue:
					d.run(ev)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

func (d *dispatcher) run(ev event) {
	d.inListener.Store(true)
	defer d.inListener.Store(false)
	_ = d.shed.dispatch(ev)
}

// close stops accepting events and drains what is queued, waiting at most
// drainTimeout. Called from a listener, it returns without waiting and the
// goroutine drains and exits once the listener returns.
func (d *dispatcher) close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.closed)
		d.mu.Unlock()
	})
	if d.inListener.Load() && calledFromListener() {
		return
	}
	d.wg.Wait()
}

const runFunc = "github.com/philipp01105/shedlog/shed.(*dispatcher).run"

// calledFromListener reports whether the calling goroutine is the dispatch
// goroutine running a listener.
func calledFromListener() bool {
	pcs := make([]uintptr, 64)
	for {
		n := runtime.Callers(2, pcs)
		if n < len(pcs) {
			pcs = pcs[:n]
			break
		}
		pcs = make([]uintptr, 2*len(pcs))
	}
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		if f.Function == runFunc {
			return true
		}
		if !more {
			return false
		}
	}
}
