package diagnostic

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	entries []Entry
}

func (r *recordingSink) Write(e Entry) {
	r.entries = append(r.entries, e)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink unavailable")
}

func TestLogger_Log_StampsEntry(t *testing.T) {
	sink := &recordingSink{}
	logger := NewLogger(sink, "debug-session", "run-1", "D")
	logger.now = func() time.Time { return time.UnixMilli(1700000000123) }

	logger.Log("score:entry", "ai_entry", "called", map[string]any{"text_length": 4})

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, "log_1700000000123_ai_entry", e.ID)
	assert.Equal(t, int64(1700000000123), e.Timestamp)
	assert.Equal(t, "score:entry", e.Location)
	assert.Equal(t, "called", e.Message)
	assert.Equal(t, map[string]any{"text_length": 4}, e.Data)
	assert.Equal(t, "debug-session", e.SessionID)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "D", e.HypothesisID)
}

func TestLogger_NilIsNoop(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Log("loc", "suffix", "message", nil)
	})
}

func TestNewLogger_NilSink(t *testing.T) {
	logger := NewLogger(nil, "s", "r", "h")
	assert.NotPanics(t, func() {
		logger.Log("loc", "suffix", "message", nil)
	})
}

func TestWriterSink_WritesJSONLine(t *testing.T) {
	var out bytes.Buffer
	sink := NewWriterSink(&out, nil)

	sink.Write(Entry{ID: "log_1_x", Message: "Çakar <ok>", Data: map[string]any{"final_score": 80}})

	line := out.String()
	assert.Contains(t, line, `"message":"Çakar <ok>"`)
	assert.Equal(t, byte('\n'), line[len(line)-1])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	for _, key := range []string{"id", "timestamp", "location", "message", "data", "sessionId", "runId", "hypothesisId"} {
		assert.Contains(t, decoded, key)
	}
}

func TestWriterSink_FailureIsReported(t *testing.T) {
	var fallback bytes.Buffer
	sink := NewWriterSink(failingWriter{}, &fallback)

	assert.NotPanics(t, func() {
		sink.Write(Entry{Message: "Fallback - empty text"})
	})
	assert.Contains(t, fallback.String(), "Failed to write log: sink unavailable")
	assert.Contains(t, fallback.String(), "LOG: Fallback - empty text")
}

func TestFileSink_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	sink := NewFileSink(path, 1, 1, nil)

	sink.Write(Entry{ID: "a", Message: "first"})
	sink.Write(Entry{ID: "b", Message: "second"})
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var messages []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		messages = append(messages, e.Message)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"first", "second"}, messages)
}

func TestFileSink_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var fallback bytes.Buffer
	sink := NewFileSink(filepath.Join(blocker, "debug.log"), 1, 1, &fallback)

	assert.NotPanics(t, func() {
		sink.Write(Entry{Message: "Frontend score used for speaking"})
	})
	assert.Contains(t, fallback.String(), "Failed to write log:")
	assert.Contains(t, fallback.String(), "LOG: Frontend score used for speaking")
}
