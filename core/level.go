package core

// Default level names, ordered from most to least severe.
const (
	LevelAlert   = "alert"
	LevelError   = "error"
	LevelWarn    = "warn"
	LevelInfo    = "info"
	LevelFail    = "fail"
	LevelSuccess = "success"
	LevelLog     = "log"
	LevelDebug   = "debug"
	LevelVerbose = "verbose"
)

// LevelDefinition describes one severity level. Lower Level values are more
// severe. Style is a CSS declaration list used by the rich printer; Terminal
// is an mgutz/ansi style spec ("fg+attrs:bg") used by the terminal printer.
type LevelDefinition struct {
	Level    int    `json:"level" yaml:"level" mapstructure:"level"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Method   Method `json:"method" yaml:"method" mapstructure:"method"`
	Style    string `json:"style,omitempty" yaml:"style,omitempty" mapstructure:"style"`
	Terminal string `json:"terminal,omitempty" yaml:"terminal,omitempty" mapstructure:"terminal"`
	Emoji    string `json:"emoji,omitempty" yaml:"emoji,omitempty" mapstructure:"emoji"`
}

// LevelPatch partially overrides a LevelDefinition. Nil fields keep the
// current value.
type LevelPatch struct {
	Level    *int    `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
	Method   *Method `json:"method,omitempty" yaml:"method,omitempty" mapstructure:"method"`
	Style    *string `json:"style,omitempty" yaml:"style,omitempty" mapstructure:"style"`
	Terminal *string `json:"terminal,omitempty" yaml:"terminal,omitempty" mapstructure:"terminal"`
	Emoji    *string `json:"emoji,omitempty" yaml:"emoji,omitempty" mapstructure:"emoji"`
}

// Apply returns def with the non-nil fields of p written over it.
func (p LevelPatch) Apply(def LevelDefinition) LevelDefinition {
	if p.Level != nil {
		def.Level = *p.Level
	}
	if p.Method != nil {
		def.Method = *p.Method
	}
	if p.Style != nil {
		def.Style = *p.Style
	}
	if p.Terminal != nil {
		def.Terminal = *p.Terminal
	}
	if p.Emoji != nil {
		def.Emoji = *p.Emoji
	}
	return def
}

// DefaultLevels returns a fresh copy of the built-in level registry.
func DefaultLevels() map[string]LevelDefinition {
	return map[string]LevelDefinition{
		LevelAlert: {
			Level: 0, Name: LevelAlert, Method: MethodError, Emoji: "🚨",
			Style:    "background: linear-gradient(to right, #fff, #ffb3b3); color: #a4000f; border-color: #e3000f;",
			Terminal: "white+b:red",
		},
		LevelError: {
			Level: 1, Name: LevelError, Method: MethodError, Emoji: "🔥",
			Style:    "background: linear-gradient(to right, #fff, #ffd1d1); color: #a4000f; border-color: #e3000f;",
			Terminal: "red+b",
		},
		LevelWarn: {
			Level: 2, Name: LevelWarn, Method: MethodWarn, Emoji: "🔔",
			Style:    "background: linear-gradient(to right, #fff, #fff0a8); color: #715100; border-color: #e3d000;",
			Terminal: "black:yellow",
		},
		LevelInfo: {
			Level: 3, Name: LevelInfo, Method: MethodInfo, Emoji: "📬",
			Style:    "background: linear-gradient(to right, #fff, #2aa4ff); color: #fff; border-color: #2aa4ff;",
			Terminal: "white:blue",
		},
		LevelFail: {
			Level: 4, Name: LevelFail, Method: MethodInfo, Emoji: "❌",
			Style:    "background: linear-gradient(to right, #fff, #ffd1d1); color: #a4000f; border-color: #e3000f;",
			Terminal: "white:red",
		},
		LevelSuccess: {
			Level: 5, Name: LevelSuccess, Method: MethodInfo, Emoji: "🎉",
			Style:    "background: linear-gradient(to right, #fff, #aafcb5); color: #005e0d; border-color: #00b317;",
			Terminal: "white:green",
		},
		LevelLog: {
			Level: 6, Name: LevelLog, Method: MethodLog, Emoji: "📌",
			Style:    "background: linear-gradient(to right, #fff, #ecedef); color: #333435; border-color: #999999;",
			Terminal: "white:black",
		},
		LevelDebug: {
			Level: 7, Name: LevelDebug, Method: MethodDebug, Emoji: "🐞",
			Style:    "background: linear-gradient(to right, #fff, #b3e5fc); color: #465464; border-color: #999999;",
			Terminal: "cyan+b",
		},
		LevelVerbose: {
			Level: 8, Name: LevelVerbose, Method: MethodDebug, Emoji: "💤",
			Style:    "background: #fff; color: #465464; border-color: #dedede;",
			Terminal: "black+h",
		},
	}
}

// LevelRange is a closed range of numeric levels.
type LevelRange struct {
	Low  int
	High int
}

// Levels returns the closed range [low, high]. The bounds may be given in
// either order.
func Levels(low, high int) LevelRange {
	if low > high {
		low, high = high, low
	}
	return LevelRange{Low: low, High: high}
}

// OnlyLevel returns a range matching exactly one level.
func OnlyLevel(level int) LevelRange {
	return LevelRange{Low: level, High: level}
}

// AllLevels matches every non-negative level.
func AllLevels() LevelRange {
	return LevelRange{Low: 0, High: int(^uint(0) >> 1)}
}

// Contains reports whether level lies within the range.
func (r LevelRange) Contains(level int) bool {
	return level >= r.Low && level <= r.High
}
