package printer

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/philipp01105/shedlog/core"
)

// Encoding selects the wire form of machine-readable records.
type Encoding int

const (
	// JSON renders each record as a JSON string argument.
	JSON Encoding = iota
	// CBOR renders each record as a []byte argument holding canonical CBOR.
	CBOR
)

// String returns the string representation of the encoding
func (e Encoding) String() string {
	switch e {
	case JSON:
		return "json"
	case CBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// Group actions carried by records of group logs.
const (
	GroupOpen  = "open"
	GroupClose = "close"
)

// Record is the structured form of one log.
type Record struct {
	Method      core.Method     `json:"method"`
	Level       int             `json:"level"`
	LevelName   string          `json:"levelName"`
	Args        []any           `json:"args"`
	Timestamp   *core.Timestamp `json:"timestamp,omitempty"`
	GroupAction string          `json:"groupAction,omitempty"`
	Label       string          `json:"label,omitempty"`
	Namespace   []string        `json:"namespace,omitempty"`
	Count       *int            `json:"count,omitempty"`
	TimeElapsed string          `json:"timeEllapsed,omitempty"`
	TimeNow     string          `json:"timeNow,omitempty"`
	Context     map[string]any  `json:"context,omitempty"`
	Stacktrace  string          `json:"stacktrace,omitempty"`
	Meta        map[string]any  `json:"meta,omitempty"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	recordEncMode cbor.EncMode
	recordDecMode cbor.DecMode
)

func init() {
	var err error
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	recordEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR encoder mode: %v", err))
	}
	decOpts := cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyQuiet,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}
	recordDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR decoder mode: %v", err))
	}
}

// DecodeCBOR decodes a record produced by a CBOR machine printer.
func DecodeCBOR(data []byte) (Record, error) {
	var r Record
	if err := recordDecMode.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Machine renders one structured record per log under the level's method.
type Machine struct {
	encoding Encoding
}

// NewMachine creates a machine-readable printer
func NewMachine(enc Encoding) *Machine {
	return &Machine{encoding: enc}
}

// Print renders d
func (p *Machine) Print(d core.LogData) *core.Render {
	if d.Definition == nil {
		return nil
	}
	rec := NewRecord(d)
	var payload any
	switch p.encoding {
	case CBOR:
		b, err := recordEncMode.Marshal(rec)
		if err != nil {
			rec.Args = stringify(rec.Args)
			b, err = recordEncMode.Marshal(rec)
		}
		if err != nil {
			return nil
		}
		payload = b
	default:
		s, err := json.MarshalToString(rec)
		if err != nil {
			rec.Args = stringify(rec.Args)
			s, err = json.MarshalToString(rec)
		}
		if err != nil {
			return nil
		}
		payload = s
	}
	return &core.Render{Method: d.Definition.Method, Args: []any{payload}}
}

// NewRecord builds the structured record for a terminated log.
func NewRecord(d core.LogData) Record {
	rec := Record{
		Method:      d.Definition.Method,
		Level:       d.Definition.Level,
		LevelName:   d.Definition.Name,
		Args:        normalize(d.Args),
		Timestamp:   d.Timestamp,
		Label:       d.Label.Name,
		Namespace:   d.Namespace,
		Count:       d.Label.Count,
		TimeElapsed: d.Label.TimeElapsed,
		TimeNow:     d.TimeNow,
		Stacktrace:  d.Stacktrace,
	}
	switch d.PrintMode {
	case core.PrintGroup, core.PrintGroupCollapsed:
		rec.GroupAction = GroupOpen
	case core.PrintGroupEnd:
		rec.GroupAction = GroupClose
		rec.Args = []any{}
	}
	if d.DumpContext && len(d.Context) > 0 {
		rec.Context = d.ContextMap()
	}
	if len(d.Meta) > 0 {
		rec.Meta = d.Meta
	}
	return rec
}

// normalize replaces values that encode poorly, such as errors, with their
// string form.
func normalize(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if err, ok := a.(error); ok {
			out[i] = err.Error()
			continue
		}
		out[i] = a
	}
	return out
}

func stringify(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = fmt.Sprint(a)
	}
	return out
}
