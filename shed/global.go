package shed

import (
	"go.uber.org/atomic"
)

var current atomic.Pointer[Shed]

// Create installs a new process-wide Shed built from cfg and returns it. A
// previously installed Shed is closed.
func Create(cfg Config) *Shed {
	s := New(cfg)
	if old := current.Swap(s); old != nil {
		_ = old.Close()
	}
	return s
}

// Remove closes and uninstalls the process-wide Shed, if any.
func Remove() {
	if old := current.Swap(nil); old != nil {
		_ = old.Close()
	}
}

// Exists reports whether a process-wide Shed is installed.
func Exists() bool {
	return current.Load() != nil
}

// Current returns the process-wide Shed, or nil.
func Current() *Shed {
	return current.Load()
}
