package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/shedlog/core"
)

type recorder struct {
	renders []core.Render
	err     error
	closed  bool
}

func (r *recorder) Handle(render core.Render) error {
	r.renders = append(r.renders, render)
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return r.err
}

func TestFunc(t *testing.T) {
	var got core.Render
	h := Func(func(r core.Render) error {
		got = r
		return nil
	})
	require.NoError(t, h.Handle(core.Render{Method: core.MethodInfo, Args: []any{"x"}}))
	assert.Equal(t, core.MethodInfo, got.Method)
	assert.NoError(t, h.Close())

	var nilFunc Func
	assert.NoError(t, nilFunc.Handle(core.Render{}))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Handle(core.Render{Method: core.MethodTable}))
	assert.NoError(t, Nop{}.Close())
}

func TestMultiHandler(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	multi := NewMultiHandler(a, nil, b)

	r := core.Render{Method: core.MethodLog, Args: []any{"multi test"}}
	require.NoError(t, multi.Handle(r))
	assert.Equal(t, []core.Render{r}, a.renders)
	assert.Equal(t, []core.Render{r}, b.renders)

	require.NoError(t, multi.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestMultiHandler_CombinesErrors(t *testing.T) {
	errA, errB := errors.New("a failed"), errors.New("b failed")
	a, b, c := &recorder{err: errA}, &recorder{err: errB}, &recorder{}
	multi := NewMultiHandler(a, b, c)

	err := multi.Handle(core.Render{Method: core.MethodError})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Len(t, c.renders, 1, "later handlers still run")
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   core.Render
		want string
	}{
		{"empty", core.Render{}, ""},
		{"terminal", core.Render{Args: []any{" Log(1)        ", "[job] ", "msg"}}, " Log(1)        [job] msg"},
		{"rich drops style", core.Render{Args: []any{" %c Info(2)", "color: red;", "a", 1}}, "  Info(2) a 1"},
		{"non string", core.Render{Args: []any{map[string]int{"a": 1}}}, "map[a:1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestZapHandler(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	h := NewZapHandler(zap.New(obs))

	tests := []struct {
		method core.Method
		level  zapcore.Level
	}{
		{core.MethodError, zapcore.ErrorLevel},
		{core.MethodWarn, zapcore.WarnLevel},
		{core.MethodInfo, zapcore.InfoLevel},
		{core.MethodLog, zapcore.InfoLevel},
		{core.MethodTable, zapcore.InfoLevel},
		{core.MethodDebug, zapcore.DebugLevel},
		{core.MethodGroupEnd, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		require.NoError(t, h.Handle(core.Render{Method: tt.method, Args: []any{"msg"}}))
	}

	entries := logs.All()
	require.Len(t, entries, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.level, entries[i].Level, string(tt.method))
		assert.Equal(t, "msg", entries[i].Message)
		assert.Equal(t, string(tt.method), entries[i].ContextMap()["method"])
	}
	assert.NoError(t, h.Close())
}

func TestZapHandler_LevelFiltered(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	h := NewZapHandler(zap.New(obs))

	require.NoError(t, h.Handle(core.Render{Method: core.MethodInfo, Args: []any{"quiet"}}))
	require.NoError(t, h.Handle(core.Render{Method: core.MethodTrace, Args: []any{"quiet"}}))
	assert.Equal(t, 0, logs.Len())

	assert.NotPanics(t, func() { _ = NewZapHandler(nil).Handle(core.Render{Method: core.MethodError}) })
}
