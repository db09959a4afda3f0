package config

import (
	"fmt"
	"io"
	"strconv"
)

// Value returns the text form of the named config field.
func (c *Config) Value(field string) string {
	switch field {
	case "backend":
		return c.Backend
	case "data_file":
		return c.DataFile
	case "schema_file":
		return c.SchemaFile
	case "validate_schema":
		return strconv.FormatBool(c.ValidateSchema)
	case "watch":
		return strconv.FormatBool(c.Watch)
	case "view":
		return c.View
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}

// Print writes every field with its value and source.
func (cws *ConfigWithSources) Print(w io.Writer) {
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "# no config file found")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(w, "# config file: %s\n", f)
	}
	for _, field := range configFields() {
		source := cws.Sources[field]
		if source == "" {
			source = SourceDefault
		}
		fmt.Fprintf(w, "%-16s = %-40q # %s\n", field, cws.Config.Value(field), source)
	}
}

// GetConfigFile returns the config file that was applied last, or "".
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
