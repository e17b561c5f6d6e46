package logging

import (
	"fmt"
	"sync"
)

// MockLogger records entries instead of writing them. Loggers derived with
// WithError/WithField/WithFields record into the same entry list as their
// parent.
type MockLogger struct {
	// Entries holds everything logged so far; read it after the code under test returns
	Entries []LogEntry

	root          *MockLogger
	mu            sync.Mutex
	pendingError  error
	pendingFields []Field
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Field returns the value of key on the entry and whether it was set.
func (e LogEntry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (m *MockLogger) base() *MockLogger {
	if m.root != nil {
		return m.root
	}
	return m
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)

	b := m.base()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Entries = append(b.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

func (m *MockLogger) derive(err error, fields []Field) *MockLogger {
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)
	return &MockLogger{root: m.base(), pendingError: err, pendingFields: all}
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record(LevelDebug, msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record(LevelInfo, msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record(LevelWarn, msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record(LevelError, msg, fields) }

// Fatal records a FATAL entry; it does not exit.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record(LevelFatal, msg, fields) }

// Fatalf records a formatted FATAL entry; it does not exit.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record(LevelFatal, fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	return m.derive(err, nil)
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.derive(m.pendingError, []Field{{Key: key, Value: value}})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	return m.derive(m.pendingError, fields)
}

// GetEntries returns a snapshot of the captured entries.
func (m *MockLogger) GetEntries() []LogEntry {
	b := m.base()
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogEntry, len(b.Entries))
	copy(out, b.Entries)
	return out
}

// GetEntriesByLevel returns the captured entries of one level.
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.GetEntries() {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Clear drops every captured entry.
func (m *MockLogger) Clear() {
	b := m.base()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Entries = []LogEntry{}
}

// HasEntry reports whether an entry with this level and message was logged.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.GetEntries() {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}
