package handler

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/shedlog/core"
)

// ZapHandler forwards renders to a zap logger. The render method selects the
// zap level and the arguments become the message.
type ZapHandler struct {
	logger *zap.Logger
}

// NewZapHandler creates a handler writing to l. A nil logger discards.
func NewZapHandler(l *zap.Logger) *ZapHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapHandler{logger: l.WithOptions(zap.AddCallerSkip(1))}
}

// Handle writes r at the level matching its method. Group markers are
// logged at debug level; groupEnd carries no message.
func (h *ZapHandler) Handle(r core.Render) error {
	lvl := zapLevel(r.Method)
	ce := h.logger.Check(lvl, Text(r))
	if ce == nil {
		return nil
	}
	fields := []zap.Field{zap.String("method", string(r.Method))}
	if r.Method == core.MethodTrace {
		fields = append(fields, zap.StackSkip("stacktrace", 1))
	}
	ce.Write(fields...)
	return nil
}

// Close flushes the underlying logger
func (h *ZapHandler) Close() error {
	// Sync on a terminal stdout/stderr fails with EINVAL on some platforms.
	_ = h.logger.Sync()
	return nil
}

func zapLevel(m core.Method) zapcore.Level {
	switch m {
	case core.MethodError:
		return zapcore.ErrorLevel
	case core.MethodWarn:
		return zapcore.WarnLevel
	case core.MethodDebug, core.MethodTrace,
		core.MethodGroup, core.MethodGroupCollapsed, core.MethodGroupEnd:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
