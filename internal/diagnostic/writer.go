package diagnostic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// encodeLine serializes an entry into one JSON line. HTML escaping is disabled
// so that non-ASCII transcripts stay readable in the log.
func encodeLine(e Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriterSink writes entries as JSON lines to an arbitrary writer, e.g. the
// console. Appends are serialized with a mutex.
type WriterSink struct {
	out      io.Writer
	fallback io.Writer
	mu       sync.Mutex
}

// NewWriterSink creates a sink that appends to out. Failures are reported to
// fallback, which may be nil to drop them silently.
func NewWriterSink(out, fallback io.Writer) *WriterSink {
	return &WriterSink{out: out, fallback: fallback}
}

func (s *WriterSink) Write(e Entry) {
	line, err := encodeLine(e)
	if err == nil {
		s.mu.Lock()
		_, err = s.out.Write(line)
		s.mu.Unlock()
	}
	if err != nil {
		reportFailure(s.fallback, e, err)
	}
}

// reportFailure downgrades a failed write to a console notice.
func reportFailure(w io.Writer, e Entry, err error) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "Failed to write log: %v\n", err)
	fmt.Fprintf(w, "LOG: %s\n", e.Message)
}
