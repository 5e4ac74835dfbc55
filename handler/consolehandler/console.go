package consolehandler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"go.uber.org/atomic"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/handler"
)

// indentStep is the indentation added per open group.
const indentStep = "  "

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer receives every method except error and warn (default: os.Stdout)
	Writer io.Writer
	// ErrWriter receives error and warn renders (default: os.Stderr)
	ErrWriter io.Writer
	// DisableTraceStack skips the goroutine stack appended to trace renders.
	DisableTraceStack bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
}

// Stats counts what a console handler has written.
type Stats struct {
	Written uint64
	Failed  uint64
}

// ConsoleHandler writes renders as text lines. Groups indent the lines that
// follow them until the matching groupEnd. A render whose only argument is a
// []byte (a CBOR machine record) is written raw without a newline, so the
// output forms a CBOR sequence.
type ConsoleHandler struct {
	out        io.Writer
	errOut     io.Writer
	traceStack bool
	mu         sync.Mutex // serializes writes to both writers and guards depth
	depth      int
	buf        bytes.Buffer
	written    atomic.Uint64
	failed     atomic.Uint64
	closed     atomic.Bool
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)
	h := &ConsoleHandler{
		out:        cfg.Writer,
		errOut:     cfg.ErrWriter,
		traceStack: !cfg.DisableTraceStack,
	}
	h.buf.Grow(256)
	return h
}

// Handle writes r. Writes after Close are ignored.
func (h *ConsoleHandler) Handle(r core.Render) error {
	if h.closed.Load() {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	w := h.out
	if r.Method == core.MethodError || r.Method == core.MethodWarn {
		w = h.errOut
	}

	if raw, ok := rawRecord(r); ok {
		return h.write(w, raw)
	}

	h.buf.Reset()
	switch r.Method {
	case core.MethodGroupEnd:
		if h.depth > 0 {
			h.depth--
		}
		return nil
	case core.MethodGroup, core.MethodGroupCollapsed:
		h.line(handler.Text(r))
		h.depth++
	case core.MethodTable:
		h.table(r.Args)
	case core.MethodTrace:
		h.line(handler.Text(r))
		if h.traceStack {
			for _, l := range strings.Split(strings.TrimRight(string(debug.Stack()), "\n"), "\n") {
				h.line(l)
			}
		}
	default:
		h.line(handler.Text(r))
	}
	return h.write(w, h.buf.Bytes())
}

func (h *ConsoleHandler) write(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		h.failed.Inc()
		return err
	}
	h.written.Inc()
	return nil
}

// line appends s at the current group depth.
func (h *ConsoleHandler) line(s string) {
	h.buf.WriteString(strings.Repeat(indentStep, h.depth))
	h.buf.WriteString(s)
	h.buf.WriteByte('\n')
}

// table lays out slices and maps as aligned index/value rows. Other
// arguments are written as plain lines.
func (h *ConsoleHandler) table(args []any) {
	for _, a := range args {
		rows := tableRows(a)
		if rows == nil {
			h.line(fmt.Sprintf("%v", a))
			continue
		}
		var tb bytes.Buffer
		tw := tabwriter.NewWriter(&tb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "(index)\tvalue")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%v\n", row[0], row[1])
		}
		_ = tw.Flush()
		for _, l := range strings.Split(strings.TrimRight(tb.String(), "\n"), "\n") {
			h.line(l)
		}
	}
}

func tableRows(a any) [][2]any {
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		rows := make([][2]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			rows = append(rows, [2]any{fmt.Sprint(i), v.Index(i).Interface()})
		}
		return rows
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		rows := make([][2]any, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, [2]any{fmt.Sprint(k.Interface()), v.MapIndex(k).Interface()})
		}
		return rows
	default:
		return nil
	}
}

func rawRecord(r core.Render) ([]byte, bool) {
	if len(r.Args) != 1 {
		return nil, false
	}
	b, ok := r.Args[0].([]byte)
	return b, ok
}

// Depth returns the number of currently open groups.
func (h *ConsoleHandler) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() Stats {
	return Stats{Written: h.written.Load(), Failed: h.failed.Load()}
}

// Close closes the handler. Writers are not closed.
func (h *ConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}

var _ handler.Handler = (*ConsoleHandler)(nil)
