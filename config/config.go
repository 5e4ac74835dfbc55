package config

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/shed"
)

// EnvPrefix prefixes environment variables read by Load, e.g.
// SHEDLOG_LOG_LEVEL or SHEDLOG_SHED_CACHELIMIT.
const EnvPrefix = "SHEDLOG"

// ErrInvalidMethod is returned when a level definition names an unknown
// render method.
var ErrInvalidMethod = errors.New("invalid level method")

// ErrMissingLevel is returned when a level patch introduces a new level
// name without a level number.
var ErrMissingLevel = errors.New("new level has no level number")

// File is the on-disk configuration: the log configuration applied by a
// Logger and the configuration of the Shed it stores into.
type File struct {
	Log  core.Config `yaml:"log" mapstructure:"log"`
	Shed shed.Config `yaml:"shed" mapstructure:"shed"`
}

// envKeys are the scalar keys that can be set from the environment alone.
var envKeys = []string{
	"log.level",
	"log.capturestacktrace",
	"log.machinereadable",
	"log.unstyled",
	"log.useemoji",
	"log.basestyle",
	"shed.cachelimit",
	"shed.strictexclude",
	"shed.asyncdispatch",
	"shed.dispatchbuffer",
	"shed.blocktimeout",
	"shed.draintimeout",
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, errors.Wrap(err, "decode config")
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads the configuration file at path (YAML, JSON or TOML, by
// extension) and applies SHEDLOG_ environment overrides. An empty path reads
// the environment only.
func Load(path string) (File, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return File{}, errors.Wrapf(err, "bind %s", key)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return File{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, errors.Wrap(err, "decode config")
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks the level definitions for unknown methods and for level
// patches that introduce a name without a level number. Overrides may patch
// levels added by the log configuration.
func (f File) Validate() error {
	known := core.DefaultLevels()
	if err := validateLevels(&f.Log, known); err != nil {
		return err
	}
	for name := range f.Log.LogLevels {
		known[name] = core.LevelDefinition{}
	}
	if err := validateLevels(f.Shed.GlobalOverrides, known); err != nil {
		return errors.Wrap(err, "global overrides")
	}
	return nil
}

func validateLevels(cfg *core.Config, known map[string]core.LevelDefinition) error {
	if cfg == nil {
		return nil
	}
	for name, p := range cfg.LogLevels {
		if p.Method != nil && !p.Method.Valid() {
			return errors.Wrapf(ErrInvalidMethod, "level %q: %q", name, *p.Method)
		}
		if _, ok := known[name]; !ok && p.Level == nil {
			return errors.Wrapf(ErrMissingLevel, "level %q", name)
		}
	}
	for name, def := range cfg.CustomLevels {
		if def.Method != "" && !def.Method.Valid() {
			return errors.Wrapf(ErrInvalidMethod, "custom level %q: %q", name, def.Method)
		}
	}
	return nil
}
