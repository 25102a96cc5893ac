// Package config loads the simulator's own runtime configuration: how to
// log, whether to trace, and which scenario file to run. It is deliberately
// separate from internal/scenario, which describes the simulated topology
// itself.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type FileLoggerConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Active   bool             `yaml:"active"`
	Level    string           `yaml:"level"`
	Encoding string           `yaml:"encoding"`
	Mode     string           `yaml:"mode"`
	File     FileLoggerConfig `yaml:"file"`
}

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

type ScenarioConfig struct {
	File string `yaml:"file"`
}

type Config struct {
	Logger    LoggerConfig    `yaml:"logger"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
}

// LoadConfig reads and parses a YAML config file. It performs only
// syntactic parsing; call Validate afterwards to check field values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnvOverrides overlays selected environment variables onto an
// already-loaded Config. Supported overrides:
//
//	SIM_LOGGER_ACTIVE              -> cfg.Logger.Active
//	SIM_LOGGER_LEVEL                -> cfg.Logger.Level
//	SIM_LOGGER_ENCODING             -> cfg.Logger.Encoding
//	SIM_LOGGER_MODE                 -> cfg.Logger.Mode
//	SIM_LOGGER_FILE_PATH            -> cfg.Logger.File.Path
//	SIM_TELEMETRY_TRACING_ENABLED   -> cfg.Telemetry.Tracing.Enabled
//	SIM_TELEMETRY_TRACING_EXPORTER  -> cfg.Telemetry.Tracing.Exporter
//	SIM_SCENARIO_FILE                -> cfg.Scenario.File
func (cfg *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SIM_LOGGER_ACTIVE"); v != "" {
		cfg.Logger.Active = parseBool(v)
	}
	if v := os.Getenv("SIM_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("SIM_LOGGER_ENCODING"); v != "" {
		cfg.Logger.Encoding = v
	}
	if v := os.Getenv("SIM_LOGGER_MODE"); v != "" {
		cfg.Logger.Mode = v
	}
	if v := os.Getenv("SIM_LOGGER_FILE_PATH"); v != "" {
		cfg.Logger.File.Path = v
	}
	if v := os.Getenv("SIM_TELEMETRY_TRACING_ENABLED"); v != "" {
		cfg.Telemetry.Tracing.Enabled = parseBool(v)
	}
	if v := os.Getenv("SIM_TELEMETRY_TRACING_EXPORTER"); v != "" {
		cfg.Telemetry.Tracing.Exporter = v
	}
	if v := os.Getenv("SIM_SCENARIO_FILE"); v != "" {
		cfg.Scenario.File = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(v)
	return v == "true" || v == "1" || v == "yes"
}

// Validate performs structural validation of the loaded configuration,
// accumulating every problem found into a single error rather than
// failing on the first one.
func (cfg *Config) Validate() error {
	var errs []string

	switch cfg.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.level: %s", cfg.Logger.Level))
	}
	switch cfg.Logger.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.encoding: %s", cfg.Logger.Encoding))
	}
	switch cfg.Logger.Mode {
	case "stdout":
	case "file":
		if cfg.Logger.File.Path == "" {
			errs = append(errs, "logger.file.path is required when mode=file")
		}
		if cfg.Logger.File.MaxSize < 0 || cfg.Logger.File.MaxBackups < 0 || cfg.Logger.File.MaxAge < 0 {
			errs = append(errs, "logger.file.* values must be non-negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.mode: %s", cfg.Logger.Mode))
	}

	if cfg.Telemetry.Tracing.Enabled {
		switch cfg.Telemetry.Tracing.Exporter {
		case "stdout":
		default:
			errs = append(errs, fmt.Sprintf("invalid telemetry.tracing.exporter: %s", cfg.Telemetry.Tracing.Exporter))
		}
	}

	if cfg.Scenario.File == "" {
		errs = append(errs, "scenario.file is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
