package diagnostic

// Entry is a single diagnostic record. It is built, written and dropped; no
// sink keeps entries around after Write returns.
type Entry struct {
	ID           string         `json:"id"`
	Timestamp    int64          `json:"timestamp"`
	Location     string         `json:"location"`
	Message      string         `json:"message"`
	Data         map[string]any `json:"data"`
	SessionID    string         `json:"sessionId"`
	RunID        string         `json:"runId"`
	HypothesisID string         `json:"hypothesisId"`
}

// Sink receives diagnostic entries. Write is best-effort: implementations
// swallow their own failures and never block the caller on them.
type Sink interface {
	Write(e Entry)
}

// NopSink discards every entry.
type NopSink struct{}

func (NopSink) Write(Entry) {}
