package diagnostic

import (
	"fmt"
	"time"
)

// Logger stamps entries with an id, a timestamp and the run identifiers, and
// hands them to a Sink. A nil *Logger is valid and does nothing.
type Logger struct {
	sink         Sink
	sessionID    string
	runID        string
	hypothesisID string
	now          func() time.Time
}

// NewLogger creates a logger over sink. A nil sink is replaced by NopSink.
func NewLogger(sink Sink, sessionID, runID, hypothesisID string) *Logger {
	if sink == nil {
		sink = NopSink{}
	}
	return &Logger{
		sink:         sink,
		sessionID:    sessionID,
		runID:        runID,
		hypothesisID: hypothesisID,
		now:          time.Now,
	}
}

// Log records one decision point. The entry id has the form
// log_<unix millis>_<suffix>.
func (l *Logger) Log(location, suffix, message string, data map[string]any) {
	if l == nil {
		return
	}
	ts := l.now().UnixMilli()
	l.sink.Write(Entry{
		ID:           fmt.Sprintf("log_%d_%s", ts, suffix),
		Timestamp:    ts,
		Location:     location,
		Message:      message,
		Data:         data,
		SessionID:    l.sessionID,
		RunID:        l.runID,
		HypothesisID: l.hypothesisID,
	})
}
