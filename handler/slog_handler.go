package handler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/shedlog/core"
)

// SlogHandler forwards renders to a log/slog logger, so shedlog output can
// join an application's existing slog pipeline.
type SlogHandler struct {
	logger *slog.Logger
}

// NewSlogHandler creates a handler writing to l. A nil logger uses
// slog.Default().
func NewSlogHandler(l *slog.Logger) *SlogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &SlogHandler{logger: l}
}

// Handle writes r at the slog level matching its method.
func (s *SlogHandler) Handle(r core.Render) error {
	ctx := context.Background()
	level := methodToSlog(r.Method)
	if !s.logger.Enabled(ctx, level) {
		return nil
	}
	s.logger.Log(ctx, level, Text(r), slog.String("method", string(r.Method)))
	return nil
}

// Close is a no-op; slog handlers own their writers.
func (s *SlogHandler) Close() error {
	return nil
}

// methodToSlog converts a render method to a slog.Level.
func methodToSlog(m core.Method) slog.Level {
	switch m {
	case core.MethodError:
		return slog.LevelError
	case core.MethodWarn:
		return slog.LevelWarn
	case core.MethodDebug, core.MethodTrace,
		core.MethodGroup, core.MethodGroupCollapsed, core.MethodGroupEnd:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
