package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/shedlog/core"
)

const sample = `
log:
  level: 6
  useEmoji: true
  meta:
    service: api
  logLevels:
    debug:
      method: log
  customLevels:
    audit:
      level: 2
      method: warn
  filters:
    namespace:
      include: [http, db]
    level:
      exclude: [4]
shed:
  cacheLimit: 50
  strictExclude: true
  drainTimeout: 2s
  globalOverrides:
    unstyled: true
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.NotNil(t, f.Log.Level)
	assert.Equal(t, 6, *f.Log.Level)
	assert.True(t, *f.Log.UseEmoji)
	assert.Equal(t, map[string]any{"service": "api"}, f.Log.Meta)
	assert.Equal(t, core.MethodLog, *f.Log.LogLevels["debug"].Method)
	assert.Equal(t, core.MethodWarn, f.Log.CustomLevels["audit"].Method)
	assert.Equal(t, []string{"http", "db"}, f.Log.Filters.Namespace.Include)
	assert.Equal(t, []int{4}, f.Log.Filters.Level.Exclude)

	assert.Equal(t, 50, f.Shed.CacheLimit)
	assert.True(t, f.Shed.StrictExclude)
	assert.Equal(t, 2*time.Second, f.Shed.DrainTimeout)
	require.NotNil(t, f.Shed.GlobalOverrides)
	assert.True(t, *f.Shed.GlobalOverrides.Unstyled)

	s := core.Resolve(&f.Log)
	assert.Equal(t, 6, s.Level)
	assert.Equal(t, core.MethodLog, s.LogLevels["debug"].Method)
	assert.Equal(t, "audit", s.CustomLevels["audit"].Name)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, f.Log.Level)
	assert.Zero(t, f.Shed.CacheLimit)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("log:\n  lvl: 3\n"))
	assert.Error(t, err)
}

func TestParse_InvalidMethod(t *testing.T) {
	_, err := Parse(strings.NewReader("log:\n  logLevels:\n    info:\n      method: shout\n"))
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = Parse(strings.NewReader("log:\n  customLevels:\n    x:\n      level: 1\n      method: print\n"))
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = Parse(strings.NewReader("shed:\n  globalOverrides:\n    logLevels:\n      warn:\n        method: nope\n"))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestParse_MissingLevel(t *testing.T) {
	_, err := Parse(strings.NewReader("log:\n  logLevels:\n    notice:\n      method: info\n"))
	assert.ErrorIs(t, err, ErrMissingLevel)

	_, err = Parse(strings.NewReader("shed:\n  globalOverrides:\n    logLevels:\n      notice:\n        emoji: x\n"))
	assert.ErrorIs(t, err, ErrMissingLevel)

	f, err := Parse(strings.NewReader(
		"log:\n  logLevels:\n    notice:\n      level: 5\n" +
			"shed:\n  globalOverrides:\n    logLevels:\n      notice:\n        emoji: x\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, *f.Log.LogLevels["notice"].Level)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	f, err := Load(writeFile(t, "shedlog.yaml", sample))
	require.NoError(t, err)

	assert.Equal(t, 6, *f.Log.Level)
	assert.Equal(t, []string{"http", "db"}, f.Log.Filters.Namespace.Include)
	assert.Equal(t, 50, f.Shed.CacheLimit)
	assert.Equal(t, 2*time.Second, f.Shed.DrainTimeout)
	assert.Equal(t, core.MethodWarn, f.Log.CustomLevels["audit"].Method)
}

func TestLoad_JSON(t *testing.T) {
	f, err := Load(writeFile(t, "shedlog.json", `{"log": {"level": 3}, "shed": {"asyncDispatch": true}}`))
	require.NoError(t, err)

	assert.Equal(t, 3, *f.Log.Level)
	assert.True(t, f.Shed.AsyncDispatch)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHEDLOG_LOG_LEVEL", "2")
	t.Setenv("SHEDLOG_SHED_CACHELIMIT", "10")
	t.Setenv("SHEDLOG_SHED_BLOCKTIMEOUT", "250ms")

	f, err := Load(writeFile(t, "shedlog.yaml", sample))
	require.NoError(t, err)
	assert.Equal(t, 2, *f.Log.Level)
	assert.Equal(t, 10, f.Shed.CacheLimit)
	assert.Equal(t, 250*time.Millisecond, f.Shed.BlockTimeout)
	assert.True(t, f.Shed.StrictExclude)

	f, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, *f.Log.Level)
	assert.Equal(t, 10, f.Shed.CacheLimit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "log:\n  logLevels:\n    info:\n      method: shout\n"))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}
