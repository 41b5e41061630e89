// pattern: Imperative Shell

package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestLogManager records every entry in memory at debug level so tests can
// assert on what was logged.
type TestLogManager struct {
	sink    *RecordSink
	baseZap *zap.Logger

	mu      sync.Mutex
	loggers map[string]*ScopedLogger
}

// NewTestLogManager creates a LoggerProvider backed by a RecordSink.
func NewTestLogManager() *TestLogManager {
	sink := NewRecordSink()
	core := zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(sink), zapcore.DebugLevel)
	return &TestLogManager{
		sink:    sink,
		baseZap: zap.New(core),
		loggers: make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger, matching the Manager API.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}
	logger := newScopedLogger(m.baseZap, zapcore.DebugLevel, scope)
	m.loggers[scope] = logger
	return logger
}

// Entries returns everything logged so far.
func (m *TestLogManager) Entries() []LogEntry {
	return m.sink.Entries()
}

// Messages returns the messages logged under scope, in order.
func (m *TestLogManager) Messages(scope string) []string {
	var out []string
	for _, e := range m.sink.Entries() {
		if e.Scope == scope {
			out = append(out, e.Message)
		}
	}
	return out
}
