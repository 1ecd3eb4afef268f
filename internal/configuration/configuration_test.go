package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Logger.Level)
	assert.Equal(t, SinkNone, config.Diagnostics.Sink)
	assert.Equal(t, "debug.log", config.Diagnostics.File)
	assert.Equal(t, 10, config.Diagnostics.MaxSize)
	assert.Equal(t, 3, config.Diagnostics.MaxBackups)
	assert.Equal(t, "debug-session", config.Diagnostics.SessionID)
	assert.Equal(t, "D", config.Diagnostics.HypothesisID)
	assert.Empty(t, config.Harness.Cases)

	_, err = uuid.Parse(config.Diagnostics.RunID)
	assert.NoError(t, err, "empty run id should be replaced with a UUID")
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: DEBUG
diagnostics:
  sink: File
  file: /tmp/speakscore/debug.log
  max_size: 5
  max_backups: 1
  session_id: session-7
  run_id: test
  hypothesis_id: A
harness:
  cases: cases.yaml
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", config.Logger.Level)
	assert.Equal(t, SinkFile, config.Diagnostics.Sink)
	assert.Equal(t, "/tmp/speakscore/debug.log", config.Diagnostics.File)
	assert.Equal(t, 5, config.Diagnostics.MaxSize)
	assert.Equal(t, 1, config.Diagnostics.MaxBackups)
	assert.Equal(t, "session-7", config.Diagnostics.SessionID)
	assert.Equal(t, "test", config.Diagnostics.RunID)
	assert.Equal(t, "A", config.Diagnostics.HypothesisID)
	assert.Equal(t, "cases.yaml", config.Harness.Cases)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SPEAKSCORE_DIAGNOSTICS_SINK", "console")
	t.Setenv("SPEAKSCORE_LOGGER_LEVEL", "warn")

	config, err := LoadConfig(writeConfig(t, "logger:\n  level: info\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Logger.Level)
	assert.Equal(t, SinkConsole, config.Diagnostics.Sink)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"bad level", "logger:\n  level: verbose\n", "logger.level"},
		{"bad sink", "diagnostics:\n  sink: kafka\n", "diagnostics.sink"},
		{"file sink without file", "diagnostics:\n  sink: file\n  file: \"\"\n", "diagnostics.file"},
		{"negative backups", "diagnostics:\n  max_backups: -1\n", "diagnostics.max_backups"},
		{"invalid yaml", "logger: [[[", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
