package core

// Method names the output operation a render is written with.
type Method string

const (
	MethodError          Method = "error"
	MethodWarn           Method = "warn"
	MethodInfo           Method = "info"
	MethodLog            Method = "log"
	MethodDebug          Method = "debug"
	MethodTrace          Method = "trace"
	MethodGroup          Method = "group"
	MethodGroupCollapsed Method = "groupCollapsed"
	MethodGroupEnd       Method = "groupEnd"
	MethodTable          Method = "table"
	MethodDir            Method = "dir"
	MethodDirxml         Method = "dirxml"
)

var methods = map[Method]struct{}{
	MethodError: {}, MethodWarn: {}, MethodInfo: {}, MethodLog: {},
	MethodDebug: {}, MethodTrace: {}, MethodGroup: {}, MethodGroupCollapsed: {},
	MethodGroupEnd: {}, MethodTable: {}, MethodDir: {}, MethodDirxml: {},
}

// Valid reports whether m is one of the known output methods.
func (m Method) Valid() bool {
	_, ok := methods[m]
	return ok
}

// PrintMode selects which render shape a printer produces for a log.
type PrintMode uint8

const (
	PrintLog PrintMode = iota
	PrintGroup
	PrintGroupCollapsed
	PrintGroupEnd
	PrintTable
	PrintDir
	PrintDirxml
	PrintTrace
)

// String returns the string representation of the print mode
func (p PrintMode) String() string {
	switch p {
	case PrintLog:
		return "log"
	case PrintGroup:
		return "group"
	case PrintGroupCollapsed:
		return "groupCollapsed"
	case PrintGroupEnd:
		return "groupEnd"
	case PrintTable:
		return "table"
	case PrintDir:
		return "dir"
	case PrintDirxml:
		return "dirxml"
	case PrintTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// Render is the (method, arguments) pair handed to an output sink. A nil
// *Render means the log produced no output.
type Render struct {
	Method Method
	Args   []any
}

// Clone returns a copy of r with its own argument slice.
func (r *Render) Clone() *Render {
	if r == nil {
		return nil
	}
	args := make([]any, len(r.Args))
	copy(args, r.Args)
	return &Render{Method: r.Method, Args: args}
}
