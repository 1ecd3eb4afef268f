package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	SinkNone    = "none"
	SinkConsole = "console"
	SinkFile    = "file"
)

// envPrefix is prepended to environment overrides, e.g. SPEAKSCORE_LOGGER_LEVEL.
const envPrefix = "SPEAKSCORE"

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Diagnostics — decision-point diagnostic log configuration
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	// Harness — scenario runner configuration
	Harness HarnessConfig `mapstructure:"harness"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// DiagnosticsConfig defines where diagnostic entries go and how they are tagged.
type DiagnosticsConfig struct {
	// Sink — none, console or file
	Sink string `mapstructure:"sink"`
	// File — path of the JSONL file, used by the file sink
	File string `mapstructure:"file"`
	// MaxSize — file size in MB before rotation (default 10)
	MaxSize int `mapstructure:"max_size"`
	// MaxBackups — number of rotated files to keep (default 3)
	MaxBackups int `mapstructure:"max_backups"`
	// SessionID, RunID, HypothesisID are copied into every entry.
	// An empty RunID is replaced with a random UUID.
	SessionID    string `mapstructure:"session_id"`
	RunID        string `mapstructure:"run_id"`
	HypothesisID string `mapstructure:"hypothesis_id"`
}

type HarnessConfig struct {
	// Cases — optional YAML file replacing the built-in scenarios
	Cases string `mapstructure:"cases"`
}

// Validate checks the correctness of the entire application configuration.
// Returns the first detected error, or nil.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Diagnostics.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks that the log level is set and supported.
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the sink type and fills in defaults.
func (d *DiagnosticsConfig) Validate() error {
	switch strings.ToLower(d.Sink) {
	case SinkNone, SinkConsole:
	case SinkFile:
		if d.File == "" {
			return errors.New("diagnostics.file: must be specified for file sink")
		}
	default:
		return fmt.Errorf("diagnostics.sink: unsupported sink '%s'", d.Sink)
	}
	d.Sink = strings.ToLower(d.Sink)

	if d.MaxSize <= 0 {
		d.MaxSize = 10
	}

	if d.MaxBackups < 0 {
		return errors.New("diagnostics.max_backups: must not be negative")
	}

	if d.RunID == "" {
		d.RunID = uuid.NewString()
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("diagnostics.sink", SinkNone)
	v.SetDefault("diagnostics.file", "debug.log")
	v.SetDefault("diagnostics.max_size", 10)
	v.SetDefault("diagnostics.max_backups", 3)
	v.SetDefault("diagnostics.session_id", "debug-session")
	v.SetDefault("diagnostics.run_id", "")
	v.SetDefault("diagnostics.hypothesis_id", "D")
	v.SetDefault("harness.cases", "")
}

// LoadConfig loads configuration using Viper. The file is YAML and optional:
// with an empty configPath only defaults and environment variables apply.
// Environment variables (SPEAKSCORE_<SECTION>_<KEY>) override file values.
//
// Returns an error if the file cannot be read, has an invalid format,
// or one of the sections fails validation.
func LoadConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
