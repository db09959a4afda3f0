package config

import (
	"os"
	"strings"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TASKMANAGER_"

// envVars maps environment variables to config field names.
var envVars = map[string]string{
	"BACKEND":         "backend",
	"DATA_FILE":       "data_file",
	"SCHEMA":          "schema_file",
	"VALIDATE_SCHEMA": "validate_schema",
	"WATCH":           "watch",
	"VIEW":            "view",
	"LOG_DIR":         "log_dir",
	"LOG_LEVEL":       "log_level",
	"LOG_FORMAT":      "log_format",
	"LOG_TIMESTAMPS":  "log_timestamps",
	"LOG_CALLER":      "log_caller",
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for suffix, field := range envVars {
		v := os.Getenv(EnvPrefix + suffix)
		if v == "" {
			continue
		}
		setField(cfg, field, v)
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
}

// setField assigns the text value v to the named field.
func setField(cfg *Config, field, v string) {
	switch field {
	case "backend":
		cfg.Backend = v
	case "data_file":
		cfg.DataFile = v
	case "schema_file":
		cfg.SchemaFile = v
	case "validate_schema":
		cfg.ValidateSchema = boolFromString(v)
	case "watch":
		cfg.Watch = boolFromString(v)
	case "view":
		cfg.View = v
	case "log_dir":
		cfg.LogDir = v
	case "log_level":
		cfg.LogLevel = v
	case "log_format":
		cfg.LogFormat = v
	case "log_timestamps":
		cfg.LogTimestamps = boolFromString(v)
	case "log_caller":
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
