// Package charmlog adapts charmbracelet/log to the domain Logger contract.
package charmlog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// Logger implements interfaces.Logger over charmbracelet/log.
type Logger struct {
	inner *log.Logger
}

// New creates a logger writing to stderr. Verbose lowers the threshold
// to debug.
func New(verbose bool) *Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) *Logger {
	inner := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		inner.SetLevel(log.DebugLevel)
	} else {
		inner.SetLevel(log.InfoLevel)
	}
	return &Logger{inner: inner}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.inner.Debug(msg, kvPairs(fields)...)
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.inner.Info(msg, kvPairs(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.inner.Warn(msg, kvPairs(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.inner.Error(msg, kvPairs(fields)...)
}

func kvPairs(fields []interfaces.Field) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}
