package core

import (
	"maps"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultThreshold is the severity threshold used when none is configured.
// Every default level prints at this threshold.
const DefaultThreshold = 8

// DefaultBaseStyle is prepended to every level style by the rich printer.
const DefaultBaseStyle = "font-size: 10px; font-weight: bold; border-radius: 0 10px 10px 0; " +
	"border-width: 1px; border-style: solid; padding-right: 10px; padding-left: 10px;"

// FilterRule holds include and exclude lists for one filter dimension.
type FilterRule struct {
	Include []string `json:"include,omitempty" yaml:"include,omitempty" mapstructure:"include"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude"`
}

// LevelRule holds include and exclude lists of numeric levels.
type LevelRule struct {
	Include []int `json:"include,omitempty" yaml:"include,omitempty" mapstructure:"include"`
	Exclude []int `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude"`
}

// Filters is the resolved global filter configuration.
type Filters struct {
	HideAll   bool       `json:"hideAll"`
	Namespace FilterRule `json:"namespace"`
	Label     FilterRule `json:"label"`
	Level     LevelRule  `json:"level"`
}

// FilterConfig is the user-facing, partial form of Filters.
type FilterConfig struct {
	HideAll   *bool       `json:"hideAll,omitempty" yaml:"hideAll,omitempty" mapstructure:"hideall"`
	Namespace *FilterRule `json:"namespace,omitempty" yaml:"namespace,omitempty" mapstructure:"namespace"`
	Label     *FilterRule `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Level     *LevelRule  `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
}

// Config is a partial log configuration. Nil fields inherit from whatever
// it is merged over.
type Config struct {
	// Level is the severity threshold; logs with a higher level number do not print.
	Level *int `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
	// LogLevels patches the default level registry by name.
	LogLevels map[string]LevelPatch `json:"logLevels,omitempty" yaml:"logLevels,omitempty" mapstructure:"loglevels"`
	// CustomLevels adds levels reachable only through Custom terminators.
	CustomLevels map[string]LevelDefinition `json:"customLevels,omitempty" yaml:"customLevels,omitempty" mapstructure:"customlevels"`
	Filters      *FilterConfig              `json:"filters,omitempty" yaml:"filters,omitempty" mapstructure:"filters"`
	// Meta is merged key by key into every log's meta.
	Meta              map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" mapstructure:"meta"`
	CaptureStacktrace *bool          `json:"captureStacktrace,omitempty" yaml:"captureStacktrace,omitempty" mapstructure:"capturestacktrace"`
	MachineReadable   *bool          `json:"machineReadable,omitempty" yaml:"machineReadable,omitempty" mapstructure:"machinereadable"`
	Unstyled          *bool          `json:"unstyled,omitempty" yaml:"unstyled,omitempty" mapstructure:"unstyled"`
	UseEmoji          *bool          `json:"useEmoji,omitempty" yaml:"useEmoji,omitempty" mapstructure:"useemoji"`
	BaseStyle         *string        `json:"baseStyle,omitempty" yaml:"baseStyle,omitempty" mapstructure:"basestyle"`
}

// Settings is a fully resolved configuration.
type Settings struct {
	Level             int
	LogLevels         map[string]LevelDefinition
	CustomLevels      map[string]LevelDefinition
	Filters           Filters
	Meta              map[string]any
	CaptureStacktrace bool
	MachineReadable   bool
	Unstyled          bool
	UseEmoji          bool
	BaseStyle         string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Level:        DefaultThreshold,
		LogLevels:    DefaultLevels(),
		CustomLevels: map[string]LevelDefinition{},
		Meta:         map[string]any{},
		BaseStyle:    DefaultBaseStyle,
	}
}

// Resolve merges the given configs over the defaults, left to right.
func Resolve(cfgs ...*Config) Settings {
	s := Defaults()
	for _, c := range cfgs {
		s = s.Merge(c)
	}
	return s
}

// Merge returns a copy of s with cfg deep-merged over it. Scalars replace,
// level patches apply field by field (a patch naming a new level must set
// Level, otherwise it is ignored with a warning), custom levels replace per name, filter
// lists replace when set and meta merges key by key. s is not modified.
func (s Settings) Merge(cfg *Config) Settings {
	out := s.Clone()
	if cfg == nil {
		return out
	}
	if cfg.Level != nil {
		out.Level = *cfg.Level
	}
	for name, patch := range cfg.LogLevels {
		def, ok := out.LogLevels[name]
		if !ok {
			if patch.Level == nil {
				Warn("level patch ignored: new level has no level number", zap.String("level", name))
				continue
			}
			def = LevelDefinition{Name: name, Method: MethodLog}
		}
		def = patch.Apply(def)
		def.Name = name
		out.LogLevels[name] = def
	}
	for name, def := range cfg.CustomLevels {
		def.Name = name
		if def.Method == "" {
			def.Method = MethodLog
		}
		out.CustomLevels[name] = def
	}
	if f := cfg.Filters; f != nil {
		if f.HideAll != nil {
			out.Filters.HideAll = *f.HideAll
		}
		if f.Namespace != nil {
			out.Filters.Namespace = mergeRule(out.Filters.Namespace, *f.Namespace)
		}
		if f.Label != nil {
			out.Filters.Label = mergeRule(out.Filters.Label, *f.Label)
		}
		if f.Level != nil {
			if f.Level.Include != nil {
				out.Filters.Level.Include = slices.Clone(f.Level.Include)
			}
			if f.Level.Exclude != nil {
				out.Filters.Level.Exclude = slices.Clone(f.Level.Exclude)
			}
		}
	}
	if len(cfg.Meta) > 0 {
		out.Meta = lo.Assign(out.Meta, cfg.Meta)
	}
	if cfg.CaptureStacktrace != nil {
		out.CaptureStacktrace = *cfg.CaptureStacktrace
	}
	if cfg.MachineReadable != nil {
		out.MachineReadable = *cfg.MachineReadable
	}
	if cfg.Unstyled != nil {
		out.Unstyled = *cfg.Unstyled
	}
	if cfg.UseEmoji != nil {
		out.UseEmoji = *cfg.UseEmoji
	}
	if cfg.BaseStyle != nil {
		out.BaseStyle = *cfg.BaseStyle
	}
	return out
}

func mergeRule(dst, src FilterRule) FilterRule {
	if src.Include != nil {
		dst.Include = slices.Clone(src.Include)
	}
	if src.Exclude != nil {
		dst.Exclude = slices.Clone(src.Exclude)
	}
	return dst
}

// Clone returns a deep copy of s. Meta values are copied shallowly.
func (s Settings) Clone() Settings {
	out := s
	out.LogLevels = maps.Clone(s.LogLevels)
	if out.LogLevels == nil {
		out.LogLevels = map[string]LevelDefinition{}
	}
	out.CustomLevels = maps.Clone(s.CustomLevels)
	if out.CustomLevels == nil {
		out.CustomLevels = map[string]LevelDefinition{}
	}
	out.Meta = maps.Clone(s.Meta)
	if out.Meta == nil {
		out.Meta = map[string]any{}
	}
	out.Filters.Namespace.Include = slices.Clone(s.Filters.Namespace.Include)
	out.Filters.Namespace.Exclude = slices.Clone(s.Filters.Namespace.Exclude)
	out.Filters.Label.Include = slices.Clone(s.Filters.Label.Include)
	out.Filters.Label.Exclude = slices.Clone(s.Filters.Label.Exclude)
	out.Filters.Level.Include = slices.Clone(s.Filters.Level.Include)
	out.Filters.Level.Exclude = slices.Clone(s.Filters.Level.Exclude)
	return out
}

// Definition looks up a level by name in the default registry.
func (s Settings) Definition(name string) (LevelDefinition, bool) {
	def, ok := s.LogLevels[name]
	return def, ok
}

// CustomDefinition looks up a level by name among the custom levels.
func (s Settings) CustomDefinition(name string) (LevelDefinition, bool) {
	def, ok := s.CustomLevels[name]
	return def, ok
}

// LevelNumber resolves a level name to its numeric level, checking the
// default registry first and then the custom levels.
func (s Settings) LevelNumber(name string) (int, bool) {
	if def, ok := s.LogLevels[name]; ok {
		return def.Level, true
	}
	if def, ok := s.CustomLevels[name]; ok {
		return def.Level, true
	}
	return 0, false
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Level = clonePtr(c.Level)
	out.LogLevels = maps.Clone(c.LogLevels)
	out.CustomLevels = maps.Clone(c.CustomLevels)
	out.Meta = maps.Clone(c.Meta)
	out.CaptureStacktrace = clonePtr(c.CaptureStacktrace)
	out.MachineReadable = clonePtr(c.MachineReadable)
	out.Unstyled = clonePtr(c.Unstyled)
	out.UseEmoji = clonePtr(c.UseEmoji)
	out.BaseStyle = clonePtr(c.BaseStyle)
	if c.Filters != nil {
		f := *c.Filters
		f.HideAll = clonePtr(c.Filters.HideAll)
		if c.Filters.Namespace != nil {
			r := mergeRule(FilterRule{}, *c.Filters.Namespace)
			f.Namespace = &r
		}
		if c.Filters.Label != nil {
			r := mergeRule(FilterRule{}, *c.Filters.Label)
			f.Label = &r
		}
		if c.Filters.Level != nil {
			r := LevelRule{
				Include: slices.Clone(c.Filters.Level.Include),
				Exclude: slices.Clone(c.Filters.Level.Exclude),
			}
			f.Level = &r
		}
		out.Filters = &f
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
