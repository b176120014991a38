// Package zaplog adapts go.uber.org/zap to the core.Logger interface, for
// callers that want the factory's lifecycle logging to flow into an existing
// zap pipeline.
package zaplog

import (
	"github.com/Swind/go-concurrency-kit/core"
	"go.uber.org/zap"
)

// Logger adapts *zap.Logger to core.Logger.
type Logger struct {
	base *zap.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps base. A nil base falls back to zap.NewNop().
func New(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	// Skip this adapter's frame so call sites point at the factory.
	return &Logger{base: base.WithOptions(zap.AddCallerSkip(1))}
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.base.Debug(msg, convert(fields)...)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.base.Info(msg, convert(fields)...)
}

// Warn logs a warning message with optional fields.
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.base.Warn(msg, convert(fields)...)
}

// Error logs an error message with optional fields.
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.base.Error(msg, convert(fields)...)
}

func convert(fields []core.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}
