package env

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/atomic"
)

// EnvVar is consulted on every check unless a mode was set with SetMode.
const EnvVar = "SHEDLOG_ENV"

// Mode is the value of the test-suppression switch.
type Mode int32

const (
	// Unset defers to the SHEDLOG_ENV environment variable.
	Unset Mode = iota
	Normal
	Test
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Test:
		return "test"
	default:
		return "unset"
	}
}

var mode atomic.Int32

// SetMode overrides the environment variable. SetMode(Unset) restores it.
func SetMode(m Mode) {
	mode.Store(int32(m))
}

// ResetMode is shorthand for SetMode(Unset).
func ResetMode() {
	SetMode(Unset)
}

// Current returns the effective mode. The decision is not cached, so a
// change to SHEDLOG_ENV takes effect on the next log.
func Current() Mode {
	if m := Mode(mode.Load()); m != Unset {
		return m
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(EnvVar)), "test") {
		return Test
	}
	return Normal
}

// IsTest reports whether printing is suppressed for every log.
func IsTest() bool {
	return Current() == Test
}

// Surface is the kind of output a printer targets.
type Surface int

const (
	// Terminal is a plain stream that understands at most ANSI escapes.
	Terminal Surface = iota
	// Rich is an interactive console that accepts %c style directives.
	Rich
)

// Descriptor tells printer selection what the output looks like.
type Descriptor struct {
	Surface Surface
	// Color enables ANSI escapes on a Terminal surface.
	Color bool
}

// Detect describes the process's stdout. Color is enabled when stdout is a
// terminal and NO_COLOR is not set.
func Detect() Descriptor {
	return DetectFile(os.Stdout)
}

// DetectFile describes f.
func DetectFile(f *os.File) Descriptor {
	tty := f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	_, noColor := os.LookupEnv("NO_COLOR")
	return Descriptor{Surface: Terminal, Color: tty && !noColor}
}
