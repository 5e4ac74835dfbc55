package logger

import (
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/env"
	"github.com/philipp01105/shedlog/filter"
	"github.com/philipp01105/shedlog/printer"
	"github.com/philipp01105/shedlog/shed"
)

type recorder struct {
	mu      sync.Mutex
	renders []core.Render
}

func (r *recorder) Handle(x core.Render) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, x)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func normalEnv(t *testing.T) {
	t.Helper()
	env.SetMode(env.Normal)
	t.Cleanup(env.ResetMode)
}

func observeWarnings(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	c, logs := observer.New(zapcore.WarnLevel)
	core.SetWarnLogger(zap.New(c))
	t.Cleanup(core.ResetWarnLogger)
	return logs
}

// newTestLogger returns a logger writing to a recorder through a colorless
// terminal printer. A nil shed keeps the logger off the process-wide Shed.
func newTestLogger(t *testing.T, s *shed.Shed, cfg *core.Config) (*Logger, *recorder) {
	t.Helper()
	normalEnv(t)
	if s == nil {
		shed.Remove()
	}
	rec := &recorder{}
	l := NewBuilder().
		WithConfig(cfg).
		WithHandler(rec).
		WithPrinter(printer.NewTerminal(false)).
		WithShed(s).
		Build()
	return l, rec
}

func newShed(t *testing.T, cfg shed.Config) *shed.Shed {
	t.Helper()
	s := shed.New(cfg)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTerminate_Threshold(t *testing.T) {
	l, rec := newTestLogger(t, nil, &core.Config{Level: lo.ToPtr(6)})

	res := l.New().Error("boom")
	assert.True(t, res.Printed)
	require.NotNil(t, res.Render)
	assert.Equal(t, core.MethodError, res.Render.Method)

	res = l.New().Debug("hidden")
	assert.False(t, res.Printed)
	assert.NotNil(t, res.Render)
	assert.Equal(t, 1, rec.len())
}

func TestTerminate_ThresholdProperty(t *testing.T) {
	normalEnv(t)
	for threshold := 0; threshold <= 8; threshold++ {
		l, _ := newTestLogger(t, nil, &core.Config{Level: lo.ToPtr(threshold)})
		for name, def := range core.DefaultLevels() {
			res := l.New().Terminate(name, "x")
			assert.Equal(t, def.Level <= threshold, res.Printed, "threshold %d level %s", threshold, name)
		}
	}
}

func TestTerminate_UnknownLevel(t *testing.T) {
	l, rec := newTestLogger(t, nil, nil)

	log := l.New()
	res := log.Terminate("nope", "x")
	assert.Same(t, log, res.Log)
	assert.Nil(t, res.Render)
	assert.False(t, res.Printed)
	assert.False(t, log.Terminated())

	res = log.Custom("nope")
	assert.Nil(t, res.Render)

	res = log.Info("still usable")
	assert.True(t, res.Printed)
	assert.Equal(t, 1, rec.len())
}

func TestTerminate_Once(t *testing.T) {
	l, rec := newTestLogger(t, nil, nil)

	log := l.New()
	first := log.Info("first")
	second := log.Error("second")

	assert.Equal(t, first.Render, second.Render)
	assert.Equal(t, 3, log.Data().Level)
	assert.Equal(t, 1, rec.len())
}

func TestTerminate_CustomLevel(t *testing.T) {
	l, _ := newTestLogger(t, nil, &core.Config{
		CustomLevels: map[string]core.LevelDefinition{
			"audit": {Level: 2, Method: core.MethodWarn, Emoji: "📝"},
		},
	})

	res := l.New().Custom("audit", "who")
	require.NotNil(t, res.Render)
	assert.True(t, res.Printed)
	assert.Equal(t, core.MethodWarn, res.Render.Method)
	assert.Equal(t, "audit", res.Log.Data().LevelName())

	res = l.New().Terminate("audit")
	assert.Nil(t, res.Render)
}

func TestData_StableAndCopied(t *testing.T) {
	l, _ := newTestLogger(t, nil, &core.Config{Meta: map[string]any{"app": "api"}})

	res := l.New().Namespace("db").Meta("user", 7).Info("hello")
	a := res.Log.Data()
	b := res.Log.Data()
	assert.Equal(t, a, b)

	a.Args[0] = "changed"
	a.Meta["app"] = "changed"
	c := res.Log.Data()
	assert.Equal(t, "hello", c.Args[0])
	assert.Equal(t, map[string]any{"app": "api", "user": 7}, c.Meta)
	assert.Equal(t, []string{"db"}, c.Namespace)
	assert.True(t, c.Terminated)
	assert.True(t, c.Printed)
	require.NotNil(t, c.Timestamp)
}

func TestData_BeforeTermination(t *testing.T) {
	l, _ := newTestLogger(t, nil, nil)

	d := l.New().Namespace("a").Standout().Data()
	assert.False(t, d.Terminated)
	assert.Nil(t, d.Definition)
	assert.Empty(t, d.Namespace)
	assert.Len(t, d.Modifiers, 2)
}

func TestModifiers_LabelRunsFirst(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, _ := newTestLogger(t, s, nil)

	res := l.New().Count().Label("c").Info("counted")
	d := res.Log.Data()
	assert.Equal(t, "c", d.Label.Name)
	require.NotNil(t, d.Label.Count)
	assert.Equal(t, 1, *d.Label.Count)
	assert.Equal(t, core.ModLabel, d.Modifiers[0].Kind)

	res = l.New().Label("c").Count().Info("again")
	assert.Equal(t, 2, *res.Log.Data().Label.Count)

	res = l.New().Label("c").CountReset().Info("reset")
	assert.Equal(t, 0, *res.Log.Data().Label.Count)

	res = l.New().Label("c").CountClear().Info("cleared")
	assert.Nil(t, res.Log.Data().Label.Count)
}

func TestModifiers_PrintModes(t *testing.T) {
	l, _ := newTestLogger(t, nil, nil)

	tests := []struct {
		name   string
		log    *Log
		method core.Method
	}{
		{"group", l.New().Group(), core.MethodGroup},
		{"groupCollapsed", l.New().GroupCollapsed(), core.MethodGroupCollapsed},
		{"groupEnd", l.New().GroupEnd(), core.MethodGroupEnd},
		{"table", l.New().Table(), core.MethodTable},
		{"dir", l.New().Dir(), core.MethodDir},
		{"dirxml", l.New().Dirxml(), core.MethodDirxml},
		{"trace", l.New().Trace(), core.MethodTrace},
		{"last wins", l.New().Table().Dir(), core.MethodDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.log.Info("x")
			require.NotNil(t, res.Render)
			assert.Equal(t, tt.method, res.Render.Method)
		})
	}
}

func TestNamespace_ArgumentsCopied(t *testing.T) {
	l, _ := newTestLogger(t, nil, nil)

	ns := []string{"a"}
	pending := l.New().Namespace(ns...)
	ns[0] = "b"
	res := pending.Info("x")

	assert.Equal(t, []string{"a"}, res.Log.Data().Namespace)
}

func TestStacktrace(t *testing.T) {
	l, _ := newTestLogger(t, nil, nil)
	assert.Empty(t, l.New().Info("x").Log.Data().Stacktrace)
	assert.Empty(t, l.New().Trace().Info("x").Log.Data().Stacktrace, "trace mode alone does not capture")

	l, _ = newTestLogger(t, nil, &core.Config{CaptureStacktrace: lo.ToPtr(true)})
	assert.Contains(t, l.New().Info("x").Log.Data().Stacktrace, "goroutine")
}

func TestEvalPasses(t *testing.T) {
	logs := observeWarnings(t)
	l, _ := newTestLogger(t, nil, nil)

	assert.False(t, l.New().Assert(true).Info("holds").Printed)
	assert.True(t, l.New().Assert(false).Info("failed").Printed)
	assert.True(t, l.New().Test(true).Info("passed").Printed)
	assert.False(t, l.New().Test(false).Info("not passed").Printed)
	assert.Zero(t, logs.Len())

	assert.True(t, l.New().Assert(true).Test(false).Info("both").Printed)
	assert.Equal(t, 1, logs.Len())
}

func TestTestEnvironment_Suppresses(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, rec := newTestLogger(t, s, nil)
	env.SetMode(env.Test)

	var got []bool
	_, err := s.AddListener([]int{1}, func(_ core.LogData, _ *core.Render, printed bool) {
		got = append(got, printed)
	})
	require.NoError(t, err)

	res := l.New().Standout().Error("x")
	assert.False(t, res.Printed)
	assert.NotNil(t, res.Render)
	assert.Zero(t, rec.len())
	assert.Equal(t, []bool{false}, got)
	assert.Equal(t, 1, s.Len())
}

func TestSilent(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, rec := newTestLogger(t, s, nil)

	res := l.New().Silent().Info("quiet")
	assert.False(t, res.Printed)
	assert.Zero(t, rec.len())
	assert.Equal(t, 1, s.Len())
}

func TestFilters_NamespaceInclude(t *testing.T) {
	l, _ := newTestLogger(t, nil, &core.Config{
		Filters: &core.FilterConfig{Namespace: &core.FilterRule{Include: []string{"foo"}}},
	})

	assert.True(t, l.New().Namespace("foo").Info("x").Printed)
	assert.False(t, l.New().Namespace("bar").Info("x").Printed)
	assert.False(t, l.New().Info("x").Printed)
	assert.True(t, l.New().NS("bar").NS("foo").Info("x").Printed)
}

func TestFilters_StandoutAndStrictExclude(t *testing.T) {
	cfg := &core.Config{
		Filters: &core.FilterConfig{Namespace: &core.FilterRule{Exclude: []string{"noisy"}}},
	}

	l, _ := newTestLogger(t, newShed(t, shed.Config{}), cfg)
	assert.False(t, l.New().Namespace("noisy").Info("x").Printed)
	assert.True(t, l.New().Namespace("noisy").Standout().Info("x").Printed)

	l, _ = newTestLogger(t, newShed(t, shed.Config{StrictExclude: true}), cfg)
	assert.False(t, l.New().Namespace("noisy").Standout().Info("x").Printed)
}

func TestShed_StoreAndListeners(t *testing.T) {
	s := newShed(t, shed.Config{CacheLimit: 2})
	l, _ := newTestLogger(t, s, nil)

	var mu sync.Mutex
	var seen []string
	_, err := s.AddListener([]int{1, 3}, func(d core.LogData, r *core.Render, printed bool) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, d.LevelName())
		assert.True(t, d.Terminated)
		assert.NotNil(t, r)
	})
	require.NoError(t, err)

	l.New().Error("a")
	l.New().Warn("b")
	l.New().Info("c")

	assert.Equal(t, []string{"error", "info"}, seen)
	got := s.GetCollection(core.Levels(1, 3))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Data().Level)
	assert.Equal(t, 3, got[1].Data().Level)
}

func TestShed_ListenerPanicDoesNotBreakLogging(t *testing.T) {
	observeWarnings(t)
	s := newShed(t, shed.Config{})
	l, rec := newTestLogger(t, s, nil)

	_, err := s.AddListener([]int{3}, func(core.LogData, *core.Render, bool) { panic("bad listener") })
	require.NoError(t, err)

	res := l.New().Info("x")
	assert.True(t, res.Printed)
	assert.Equal(t, 1, rec.len())
	assert.Equal(t, uint64(1), s.Stats().ListenerFailures)
}

func TestShed_GlobalOverridesWin(t *testing.T) {
	s := newShed(t, shed.Config{GlobalOverrides: &core.Config{Level: lo.ToPtr(2)}})
	l, _ := newTestLogger(t, s, &core.Config{Level: lo.ToPtr(8)})

	assert.False(t, l.New().Info("x").Printed)
	assert.True(t, l.New(&core.Config{Level: lo.ToPtr(8)}).Warn("x").Printed)

	require.NoError(t, s.Close())
	assert.True(t, l.New().Info("x").Printed)
}

func TestShed_ProcessWide(t *testing.T) {
	normalEnv(t)
	t.Cleanup(shed.Remove)
	s := shed.Create(shed.Config{})

	l := NewBuilder().WithHandler(&recorder{}).WithPrinter(printer.NewTerminal(false)).Build()
	l.New().Info("stored")
	assert.Equal(t, 1, s.Len())
	assert.Same(t, s, l.Shed())

	shed.Remove()
	assert.Nil(t, l.Shed())
	l.New().Info("not stored")
	assert.Zero(t, s.Len())

	next := shed.Create(shed.Config{})
	l.New().Info("stored again")
	assert.Equal(t, 1, next.Len())
}

func TestMDC_ContextAcrossCallSites(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, rec := newTestLogger(t, s, nil)

	l.New().Label("foo").Thread("a", 1)
	l.New().Label("foo").Thread("b", 2)
	res := l.New().Label("foo").Dump().Info("threaded")

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, res.Log.Context())
	require.Equal(t, 1, rec.len())
	last := rec.renders[0].Args
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, last[len(last)-1])

	l.New().Label("foo").CloseThread()
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, res.Log.Context())
	assert.Empty(t, l.New().Label("foo").Info("after").Log.Context())

	lbl, ok := s.GetLabel("foo")
	require.True(t, ok)
	assert.Empty(t, lbl.Context())
}

func TestMDC_WithoutShed(t *testing.T) {
	l, _ := newTestLogger(t, nil, nil)

	l.New().Label("foo").Thread("a", 1)
	res := l.New().Label("foo").Info("isolated")
	assert.Empty(t, res.Log.Context())
	assert.Equal(t, "foo", res.Log.Data().Label.Name)
}

func TestThread_WithoutLabelWarns(t *testing.T) {
	logs := observeWarnings(t)
	l, _ := newTestLogger(t, nil, nil)

	l.New().Thread("k", "v")
	l.New().CloseThread()
	assert.Equal(t, 2, logs.Len())
}

func TestTimers(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, _ := newTestLogger(t, s, nil)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	core.SetClock(func() time.Time { return now })
	t.Cleanup(func() { core.SetClock(nil) })

	l.New().Label("t").Time().Info("start")
	now = base.Add(1500 * time.Millisecond)
	res := l.New().Label("t").TimeEnd().Info("end")
	assert.Equal(t, "1s 500ms", res.Log.Data().Label.TimeElapsed)

	res = l.New().TimeNow().Timestamp().Info("now")
	d := res.Log.Data()
	assert.NotEmpty(t, d.TimeNow)
	assert.True(t, d.ShowTimestamp)
	assert.Equal(t, base.Add(1500*time.Millisecond).UnixMilli(), d.Timestamp.UnixMilli)
}

func TestSeal(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, _ := newTestLogger(t, s, &core.Config{Meta: map[string]any{"svc": "api"}})

	sealed := l.New().Label("sealed").Namespace("core").Meta("k", "v").Seal()
	a := sealed().Info("one")
	b := sealed().Count().Warn("two")

	for _, res := range []Terminated{a, b} {
		d := res.Log.Data()
		assert.Equal(t, "sealed", d.Label.Name)
		assert.Equal(t, []string{"core"}, d.Namespace)
		assert.Equal(t, map[string]any{"svc": "api", "k": "v"}, d.Meta)
	}
	assert.NotSame(t, a.Log, b.Log)
	assert.Equal(t, 1, *b.Log.Data().Label.Count)
}

func TestBundle(t *testing.T) {
	s := newShed(t, shed.Config{})
	l, _ := newTestLogger(t, s, nil)

	b := NewBundle(l.New().Namespace("bundle"))
	b.New().Info("one")
	b.New().Namespace("db").Warn("two")
	pending := b.New()
	b.New().Namespace("db").Error("three")

	logs := b.Logs()
	require.Len(t, logs, 4)
	assert.Same(t, pending, logs[2])
	assert.False(t, logs[2].Terminated())

	db := filter.Namespace(logs, "db")
	require.Len(t, db, 2)
	assert.Equal(t, "two", db[0].Data().Args[0])
	assert.Equal(t, "three", db[1].Data().Args[0])

	assert.Len(t, filter.Level(logs, 0, 2), 2)
	assert.Equal(t, 3, s.Len())
}

func TestBundleFunc_WithoutShed(t *testing.T) {
	l, _ := newTestLogger(t, nil, nil)

	var calls int
	b := NewBundleFunc(func() *Log {
		calls++
		return l.New().Label("b")
	})
	b.New().Info("one")
	b.New().Info("two")

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, b.Len())
	assert.Len(t, filter.Label(b.Logs(), "b"), 2)
}

func TestMachineReadable(t *testing.T) {
	normalEnv(t)
	shed.Remove()
	rec := &recorder{}
	l := NewBuilder().
		WithConfig(&core.Config{MachineReadable: lo.ToPtr(true)}).
		WithHandler(rec).
		WithEnv(env.Descriptor{Surface: env.Terminal}).
		Build()

	res := l.New().Namespace("api").Meta("req", "r1").Warn("slow", 42)
	require.NotNil(t, res.Render)
	assert.Equal(t, core.MethodWarn, res.Render.Method)

	rec0 := res.Render.Args[0].(string)
	assert.Equal(t, "warn", gjson.Get(rec0, "levelName").String())
	assert.Equal(t, int64(2), gjson.Get(rec0, "level").Int())
	assert.Equal(t, "slow", gjson.Get(rec0, "args.0").String())
	assert.Equal(t, int64(42), gjson.Get(rec0, "args.1").Int())
	assert.Equal(t, "api", gjson.Get(rec0, "namespace.0").String())
	assert.Equal(t, "r1", gjson.Get(rec0, "meta.req").String())
}

func TestDefaultLogger(t *testing.T) {
	normalEnv(t)
	shed.Remove()
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	rec := &recorder{}
	SetDefault(NewBuilder().WithHandler(rec).WithPrinter(printer.NewTerminal(false)).Build())
	SetDefault(nil)

	Info("a")
	Label("x").Warn("b")
	Namespace("n").Error("c")
	assert.Equal(t, 3, rec.len())
}

func TestLog_ConcurrentTermination(t *testing.T) {
	s := newShed(t, shed.Config{CacheLimit: 50})
	l, rec := newTestLogger(t, s, nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.New().Label("shared").Count().Info(i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, rec.len())
	assert.Equal(t, 50, s.Len())
	lbl, ok := s.GetLabel("shared")
	require.True(t, ok)
	assert.Equal(t, 100, *lbl.Count())
}
