package config

import (
	"flag"
	"strconv"
)

// flagFields maps CLI flag names to config field names.
var flagFields = map[string]string{
	"backend":         "backend",
	"data":            "data_file",
	"schema":          "schema_file",
	"validate-schema": "validate_schema",
	"watch":           "watch",
	"view":            "view",
	"log-dir":         "log_dir",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"log-timestamps":  "log_timestamps",
	"log-caller":      "log_caller",
}

// parseFlags defines and parses CLI flags. Only flags given on the command
// line override cfg. If sources is non-nil, it tracks the source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskmanager", flag.ContinueOnError)
	}

	backend := fs.String("backend", cfg.Backend, "Storage backend: memory, json, csv, xml, toml, yaml or sqlite")
	dataFile := fs.String("data", cfg.DataFile, "Path to the data file (default .taskmanager/tasks.<ext>)")
	schemaFile := fs.String("schema", cfg.SchemaFile, "JSON Schema file for the json backend (default built-in)")
	validateSchema := fs.Bool("validate-schema", cfg.ValidateSchema, "Validate json data files against the schema")
	watch := fs.Bool("watch", cfg.Watch, "Refresh the UI when the data file changes on disk")
	view := fs.String("view", cfg.View, "Initial view: buttons, columns, rows or chart")
	logDir := fs.String("log-dir", cfg.LogDir, "Log directory")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	logCaller := fs.Bool("log-caller", cfg.LogCaller, "Include caller information in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	values := map[string]string{
		"backend":         *backend,
		"data":            *dataFile,
		"schema":          *schemaFile,
		"validate-schema": strconv.FormatBool(*validateSchema),
		"watch":           strconv.FormatBool(*watch),
		"view":            *view,
		"log-dir":         *logDir,
		"log-level":       *logLevel,
		"log-format":      *logFormat,
		"log-timestamps":  strconv.FormatBool(*logTimestamps),
		"log-caller":      strconv.FormatBool(*logCaller),
	}

	// Only explicitly set flags override earlier layers.
	fs.Visit(func(f *flag.Flag) {
		field, ok := flagFields[f.Name]
		if !ok {
			return
		}
		setField(cfg, field, values[f.Name])
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
