package core

import (
	"os"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var warnLogger atomic.Pointer[zap.Logger]

func init() {
	warnLogger.Store(newStderrWarnLogger())
}

func newStderrWarnLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	c := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.WarnLevel,
	)
	return zap.New(c).Named("shedlog")
}

// SetWarnLogger replaces the logger that receives misuse warnings and
// listener failures. Passing nil silences warnings.
func SetWarnLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	warnLogger.Store(l)
}

// ResetWarnLogger restores the default stderr warning logger.
func ResetWarnLogger() {
	warnLogger.Store(newStderrWarnLogger())
}

// WarnLogger returns the current warning logger.
func WarnLogger() *zap.Logger {
	return warnLogger.Load()
}

// Warn reports a non-fatal misuse or failure.
func Warn(msg string, fields ...zap.Field) {
	warnLogger.Load().Warn(msg, fields...)
}
