package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskmanager configuration file
# Values can be overridden by TASKMANAGER_* environment variables or CLI flags

# Storage backend: memory, json, csv, xml, toml, yaml or sqlite
backend = "json"

# Data file (default: .taskmanager/tasks.<ext> in the working directory)
# data_file = "tasks.json"

# Validate json data files against a JSON Schema (built-in when schema_file is empty)
validate_schema = false
# schema_file = ".taskmanager/tasks.schema.json"

# Refresh the terminal UI when the data file is modified by another program
watch = true

# Initial view: buttons, columns, rows or chart
view = "buttons"

# Logging (the terminal UI logs to a per-session file under log_dir)
log_dir = "~/.taskmanager/logs"
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
