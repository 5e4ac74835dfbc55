package core

import (
	"maps"
	"slices"
)

// LabelData is the part of a label captured into a log snapshot.
type LabelData struct {
	Name        string `json:"name,omitempty" cbor:"name,omitempty"`
	TimeElapsed string `json:"timeEllapsed,omitempty" cbor:"timeEllapsed,omitempty"`
	Count       *int   `json:"count,omitempty" cbor:"count,omitempty"`
}

// ContextEntry is one key/value pair of a label context.
type ContextEntry struct {
	Key   string
	Value any
}

// LogData is a snapshot of a log. Snapshots handed out by logs, the Shed and
// listeners are copies; mutating one does not affect the log it came from.
type LogData struct {
	Settings   Settings
	Level      int
	Terminated bool
	// Definition is nil until the log terminates with a known level.
	Definition *LevelDefinition
	Args       []any
	Timestamp  *Timestamp
	Stacktrace string
	Namespace  []string
	Label      LabelData
	// Assertion and Expression are nil when Assert or Test were not used.
	Assertion     *bool
	Expression    *bool
	DumpContext   bool
	IsSilent      bool
	IsStandout    bool
	Printed       bool
	ShowTimestamp bool
	TimeNow       string
	Meta          map[string]any
	Context       []ContextEntry
	PrintMode     PrintMode
	Modifiers     []Modifier
}

// ContextMap returns the label context as a map.
func (d LogData) ContextMap() map[string]any {
	out := make(map[string]any, len(d.Context))
	for _, e := range d.Context {
		out[e.Key] = e.Value
	}
	return out
}

// LevelName returns the name of the level the log terminated at, or "".
func (d LogData) LevelName() string {
	if d.Definition == nil {
		return ""
	}
	return d.Definition.Name
}

// Clone returns a deep copy of d. Argument and meta values are copied
// shallowly.
func (d LogData) Clone() LogData {
	out := d
	out.Settings = d.Settings.Clone()
	if d.Definition != nil {
		def := *d.Definition
		out.Definition = &def
	}
	if d.Args != nil {
		out.Args = slices.Clone(d.Args)
	}
	if d.Timestamp != nil {
		ts := *d.Timestamp
		out.Timestamp = &ts
	}
	out.Namespace = slices.Clone(d.Namespace)
	out.Label.Count = clonePtr(d.Label.Count)
	out.Assertion = clonePtr(d.Assertion)
	out.Expression = clonePtr(d.Expression)
	out.Meta = maps.Clone(d.Meta)
	out.Context = slices.Clone(d.Context)
	out.Modifiers = slices.Clone(d.Modifiers)
	return out
}

// Entry is anything that can be filtered and replayed: a terminated log in
// the Shed cache or a bundled log.
type Entry interface {
	// Data returns a snapshot copy of the log.
	Data() LogData
	// Render returns the render computed at termination, or nil.
	Render() *Render
}
