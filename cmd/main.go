package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"speakscore/internal/configuration"
	"speakscore/internal/diagnostic"
	"speakscore/internal/harness"
	"speakscore/internal/score"
	"strings"
)

// prepareLogger sets the global slog logger to JSON on stderr with the given
// level. Unknown levels fall back to info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// newSink builds the diagnostic sink selected in the configuration. The
// returned closer is nil when the sink holds no resources.
func newSink(config configuration.DiagnosticsConfig, stderr io.Writer) (diagnostic.Sink, io.Closer) {
	switch config.Sink {
	case configuration.SinkFile:
		sink := diagnostic.NewFileSink(config.File, config.MaxSize, config.MaxBackups, stderr)
		return sink, sink
	case configuration.SinkConsole:
		return diagnostic.NewWriterSink(stderr, stderr), nil
	default:
		return diagnostic.NopSink{}, nil
	}
}

// run executes the configured scenarios and writes their status to stdout.
// Diagnostic failure notices go to stderr. Failing scenarios are not an error.
func run(config *configuration.AppConfig, stdout, stderr io.Writer) ([]harness.Result, error) {
	cases := harness.DefaultCases()
	if config.Harness.Cases != "" {
		var err error
		cases, err = harness.LoadCases(config.Harness.Cases)
		if err != nil {
			return nil, err
		}
	}

	sink, closer := newSink(config.Diagnostics, stderr)
	if closer != nil {
		defer closer.Close()
	}
	diag := diagnostic.NewLogger(
		sink,
		config.Diagnostics.SessionID,
		config.Diagnostics.RunID,
		config.Diagnostics.HypothesisID,
	)

	h, err := harness.New(score.NewCalculator(diag), cases, stdout)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize harness: %w", err)
	}

	slog.Debug("Running scenarios", "cases", len(cases), "run_id", config.Diagnostics.RunID)
	return h.Run(), nil
}

// Failing scenarios do not change the exit code; only startup errors exit with 1.
func main() {
	configPath := flag.String("config", "", "configuration file (optional)")
	flag.Parse()
	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	results, err := run(config, os.Stdout, os.Stderr)
	if err != nil {
		slog.Error("Unable to run scenarios", "error", err)
		os.Exit(1)
	}

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	slog.Info("Scenarios finished", "passed", passed, "total", len(results))
}
