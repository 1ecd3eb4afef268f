package diagnostic

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink appends entries as JSON lines to a local file. The file is rotated
// and compressed by lumberjack once it outgrows maxSize megabytes.
//
// Any failure (unwritable directory, full disk, encoding error) is reported to
// the fallback writer and otherwise ignored.
type FileSink struct {
	lumberjack *lumberjack.Logger // rotating file writer, safe for concurrent use
	fallback   io.Writer          // receives failure notices
}

// NewFileSink creates a sink for the given file path.
// Parameters:
// - file: path of the JSONL file
// - maxSize: maximum file size in MB before rotation
// - maxBackups: maximum number of rotated files to keep
// - fallback: writer for failure notices (usually os.Stderr)
func NewFileSink(file string, maxSize, maxBackups int, fallback io.Writer) *FileSink {
	return &FileSink{
		lumberjack: &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		},
		fallback: fallback,
	}
}

// Write appends e to the file.
func (s *FileSink) Write(e Entry) {
	line, err := encodeLine(e)
	if err == nil {
		_, err = s.lumberjack.Write(line)
	}
	if err != nil {
		reportFailure(s.fallback, e, err)
		return
	}
	slog.Debug("diagnostic entry written", "message", e.Message, "file", s.lumberjack.Filename)
}

// Close releases the underlying file handle.
func (s *FileSink) Close() error {
	return s.lumberjack.Close()
}
