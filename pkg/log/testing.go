// Package log provides testing utilities for structured logging.
//
// TestLogger writes through the real zerolog backend into an in-memory buffer
// so tests can assert on exactly what production code would emit.

package log

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// TestLogger captures JSON log lines in memory for later inspection.
type TestLogger struct {
	Logger
	buffer *bytes.Buffer
}

// NewTestLogger creates a TestLogger with the given minimum level.
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	miner := mining.NewApriori(mining.WithLogger(logger))
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	zl := zerolog.New(buffer).Level(toZerolog(level))
	return &TestLogger{
		Logger: NewZerologLogger(zl),
		buffer: buffer,
	}, buffer
}

// GetLogEntries parses the captured output into one map per line.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any entry's message equals message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry[zerolog.MessageFieldName] == message {
			return true
		}
	}
	return false
}

// ContainsField reports whether any entry has key set to value. Numbers are
// decoded from JSON, so compare against float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops all captured output.
func (t *TestLogger) Clear() {
	t.buffer.Reset()
}
