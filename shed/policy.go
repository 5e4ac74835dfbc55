package shed

import (
	"go.uber.org/atomic"
)

// OverflowPolicy defines how async dispatch handles a full queue
type OverflowPolicy int

const (
	// DropNewest drops the event being dispatched when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued event to make room
	DropOldest
	// Block waits for space until BlockTimeout, then drops the event
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default per-level overflow policies: the
// two most severe default levels (alert and error) block, everything else
// drops the newest event.
func DefaultLevelPolicy() map[int]OverflowPolicy {
	return map[int]OverflowPolicy{
		0: Block,
		1: Block,
	}
}

// Stats tracks Shed activity
type Stats struct {
	stored           atomic.Uint64
	evicted          atomic.Uint64
	dispatched       atomic.Uint64
	listenerFailures atomic.Uint64
	dropped          atomic.Uint64
	blocked          atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	// CacheSize is the number of logs currently cached
	CacheSize int
	// Stored counts logs added to the cache
	Stored uint64
	// Evicted counts logs removed from a full cache
	Evicted uint64
	// Dispatched counts listener invocations
	Dispatched uint64
	// ListenerFailures counts listener invocations that panicked
	ListenerFailures uint64
	// Dropped counts async dispatch events lost to overflow
	Dropped uint64
	// Blocked counts times async dispatch waited for queue space
	Blocked uint64
}

// snapshot returns a copy of the counters
func (s *Stats) snapshot(cacheSize int) Snapshot {
	return Snapshot{
		CacheSize:        cacheSize,
		Stored:           s.stored.Load(),
		Evicted:          s.evicted.Load(),
		Dispatched:       s.dispatched.Load(),
		ListenerFailures: s.listenerFailures.Load(),
		Dropped:          s.dropped.Load(),
		Blocked:          s.blocked.Load(),
	}
}
