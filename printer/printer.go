package printer

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/env"
)

// Printer turns a terminated log snapshot into a render. A nil result means
// the log has nothing to output.
type Printer interface {
	Print(data core.LogData) *core.Render
}

// Select picks the printer for a log. Machine-readable settings always win;
// otherwise the descriptor's surface decides.
func Select(d env.Descriptor, s core.Settings) Printer {
	if s.MachineReadable {
		return NewMachine(JSON)
	}
	if d.Surface == env.Rich {
		return NewRich()
	}
	return NewTerminal(d.Color)
}

// shapes is implemented by each printer variant; render dispatches on the
// snapshot's print mode and attaches the dumped context.
type shapes interface {
	log(d core.LogData) *core.Render
	group(d core.LogData, collapsed bool) *core.Render
	trace(d core.LogData) *core.Render
}

func render(p shapes, d core.LogData) *core.Render {
	if d.Definition == nil {
		return nil
	}
	var r *core.Render
	switch d.PrintMode {
	case core.PrintGroup:
		r = p.group(d, false)
	case core.PrintGroupCollapsed:
		r = p.group(d, true)
	case core.PrintGroupEnd:
		r = &core.Render{Method: core.MethodGroupEnd, Args: []any{}}
	case core.PrintTable:
		r = &core.Render{Method: core.MethodTable, Args: args(d)}
	case core.PrintDir:
		r = &core.Render{Method: core.MethodDir, Args: args(d)}
	case core.PrintDirxml:
		r = &core.Render{Method: core.MethodDirxml, Args: args(d)}
	case core.PrintTrace:
		r = p.trace(d)
	default:
		r = p.log(d)
	}
	return attachContext(r, d)
}

func attachContext(r *core.Render, d core.LogData) *core.Render {
	if r == nil || !d.DumpContext || d.Settings.MachineReadable {
		return r
	}
	r.Args = append(r.Args, d.ContextMap())
	return r
}

func args(d core.LogData) []any {
	out := make([]any, len(d.Args))
	copy(out, d.Args)
	return out
}

// useEmoji reports whether emoji decorations apply. Unstyled output never
// carries emoji.
func useEmoji(s core.Settings) bool {
	return s.UseEmoji && !s.Unstyled
}

// leaderName returns "Name(argc)" for the log's level.
func leaderName(d core.LogData) string {
	return initialCaps(d.Definition.Name) + "(" + strconv.Itoa(len(d.Args)) + ")"
}

func initialCaps(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// firstString returns the first argument when it is a string.
func firstString(d core.LogData) (string, bool) {
	if len(d.Args) == 0 {
		return "", false
	}
	s, ok := d.Args[0].(string)
	return s, ok
}

// meta renders the decorations shared by the text printers: timestamp,
// namespaces, label, timer, counter and assertion markers.
func meta(d core.LogData) string {
	buf := getBuffer()
	defer putBuffer(buf)

	emoji := useEmoji(d.Settings)
	if d.ShowTimestamp && d.Timestamp != nil {
		buf.WriteString(d.Timestamp.ISO8601)
		buf.WriteString("  ")
	}
	for _, ns := range d.Namespace {
		buf.WriteByte('#')
		buf.WriteString(ns)
		buf.WriteByte(' ')
	}
	if d.Label.Name != "" {
		buf.WriteByte('[')
		buf.WriteString(d.Label.Name)
		buf.WriteString("] ")
	}
	elapsed := d.TimeNow
	if elapsed == "" {
		elapsed = d.Label.TimeElapsed
	}
	if elapsed != "" {
		buf.WriteString(" (")
		if emoji {
			buf.WriteString("⏱")
		}
		buf.WriteString(elapsed)
		buf.WriteString(") ")
	}
	if d.Label.Count != nil {
		buf.WriteString("(Count: ")
		buf.WriteString(strconv.Itoa(*d.Label.Count))
		buf.WriteByte(')')
	}
	if d.Assertion != nil && !*d.Assertion {
		if emoji {
			buf.WriteString("❌ ")
		}
		buf.WriteString("Assertion failed:")
	}
	if d.Expression != nil && *d.Expression {
		if emoji {
			buf.WriteString("✅ ")
		}
		buf.WriteString("Expression Passed:")
	}
	return buf.String()
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
