// Package log provides structured logging for go-pegfed components.
// It wraps zap and exposes typed fields so domain values can be logged
// without going through fmt.
package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// mainLoggerName is a name of the global logger.
const mainLoggerName = "pegfed"

// where logs go by default.
var logWriter io.Writer = os.Stdout

var (
	mu      sync.RWMutex
	appLog  Log
	encJSON bool
)

func init() {
	SetupGlobal(NewWithLevel(mainLoggerName, zap.NewAtomicLevelAt(zapcore.InfoLevel)))
}

// GetLogger returns the global logger.
func GetLogger() Log {
	mu.RLock()
	defer mu.RUnlock()
	return appLog
}

// SetupGlobal overwrites global logger.
func SetupGlobal(logger Log) {
	mu.Lock()
	defer mu.Unlock()
	appLog = logger
}

// JSONLog turns JSON encoding on or off for loggers created afterwards.
func JSONLog(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	encJSON = enabled
}

func encoder() zapcore.Encoder {
	mu.RLock()
	defer mu.RUnlock()
	if encJSON {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// NewNop creates silent logger.
func NewNop() Log {
	return NewFromLog(zap.NewNop())
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string, level zap.AtomicLevel, hooks ...func(zapcore.Entry) error) Log {
	core := zapcore.NewCore(encoder(), zapcore.AddSync(logWriter), level)
	l := zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
	return Log{logger: l, sugar: l.Sugar(), lvl: &level}
}

// NewFromLog creates a Log from an existing zap-compatible log.
func NewFromLog(l *zap.Logger) Log {
	return Log{logger: l, sugar: l.Sugar()}
}

// ParseLevel parses a textual level ("debug", "info", ...) into an atomic level.
func ParseLevel(text string) (zap.AtomicLevel, error) {
	return zap.ParseAtomicLevel(text)
}

// Info prints formatted info level log message with the global logger.
func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

// Debug prints formatted debug level log message with the global logger.
func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

// Warning prints formatted warning level log message with the global logger.
func Warning(msg string, args ...any) {
	GetLogger().Warning(msg, args...)
}

// Error prints formatted error level log message with the global logger.
func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
