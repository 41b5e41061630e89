// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"sync"
	"time"
)

// RecordSink implements zapcore.WriteSyncer by decoding each JSON record
// written by zap into a LogEntry and keeping it in memory.
type RecordSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordSink creates an empty sink.
func NewRecordSink() *RecordSink {
	return &RecordSink{}
}

// Write implements io.Writer. Records that fail to decode are dropped so
// logging never fails the caller.
func (s *RecordSink) Write(p []byte) (int, error) {
	entry, err := parseEntry(p)
	if err != nil {
		return len(p), nil
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer. No-op.
func (s *RecordSink) Sync() error {
	return nil
}

// Entries returns a snapshot of the recorded entries in write order.
func (s *RecordSink) Entries() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// parseEntry converts JSON log data from zap into a LogEntry.
func parseEntry(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Scope:     "app",
		Fields:    make(map[string]any),
	}

	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
		delete(raw, "msg")
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = ParseLevel(level)
		delete(raw, "level")
	}
	if logger, ok := raw["logger"].(string); ok {
		entry.Scope = logger
		delete(raw, "logger")
	}
	if ts, ok := raw["ts"].(float64); ok {
		sec := int64(ts)
		nsec := int64((ts - float64(sec)) * 1e9)
		entry.Timestamp = time.Unix(sec, nsec)
		delete(raw, "ts")
	}
	delete(raw, "caller")
	delete(raw, "stacktrace")

	for k, v := range raw {
		entry.Fields[k] = v
	}
	return entry, nil
}
