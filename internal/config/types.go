package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultBackend   = "json"
	DefaultView      = "buttons"
	DefaultLogDir    = "~/.taskmanager/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultWatch     = true
)

// Views lists the panes of the terminal UI, in tab order.
var Views = []string{"buttons", "columns", "rows", "chart"}

// Config holds the full configuration for taskmanager.
type Config struct {
	// Storage
	Backend        string `toml:"backend"`
	DataFile       string `toml:"data_file"`
	SchemaFile     string `toml:"schema_file"`
	ValidateSchema bool   `toml:"validate_schema"`

	// Terminal UI
	Watch bool   `toml:"watch"`
	View  string `toml:"view"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"backend",
		"data_file",
		"schema_file",
		"validate_schema",
		"watch",
		"view",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.DataFile = ""
	cfg.SchemaFile = ""
	cfg.ValidateSchema = false
	cfg.Watch = DefaultWatch
	cfg.View = DefaultView
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
