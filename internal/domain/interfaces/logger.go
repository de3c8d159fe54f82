// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

import "sync"

// Logger defines the interface for structured logging. Components receive
// a Logger at construction; there is no package-level logger.
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// Entry is a single captured log record.
type Entry struct {
	Level  string
	Msg    string
	Fields []Field
}

// CapturingLogger records entries in memory so tests can assert on what
// was logged.
type CapturingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// Debug records a debug-level entry
func (c *CapturingLogger) Debug(msg string, fields ...Field) { c.append("DEBUG", msg, fields) }

// Info records an info-level entry
func (c *CapturingLogger) Info(msg string, fields ...Field) { c.append("INFO", msg, fields) }

// Warn records a warn-level entry
func (c *CapturingLogger) Warn(msg string, fields ...Field) { c.append("WARN", msg, fields) }

// Error records an error-level entry
func (c *CapturingLogger) Error(msg string, fields ...Field) { c.append("ERROR", msg, fields) }

func (c *CapturingLogger) append(level, msg string, fields []Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Level: level, Msg: msg, Fields: fields})
}

// Entries returns a copy of all recorded entries.
func (c *CapturingLogger) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// HasMessage reports whether any captured entry contains msg at the given
// level. Level "" matches any level.
func (c *CapturingLogger) HasMessage(level, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if (level == "" || e.Level == level) && e.Msg == msg {
			return true
		}
	}
	return false
}
