// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskmanager/taskmanager.toml or OS-specific config directory)
// 3. Project config file (taskmanager.toml or .taskmanager.toml in the working directory)
// 4. Environment variables (TASKMANAGER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskmanager/taskmanager.toml (preferred)
// - Windows: %APPDATA%\taskmanager\taskmanager.toml
// - macOS: ~/Library/Application Support/taskmanager/taskmanager.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskmanager/taskmanager.toml or ~/.config/taskmanager/taskmanager.toml
//
// Project-level config locations (overrides user config):
// - ./taskmanager.toml (preferred)
// - ./.taskmanager.toml
// - ./.taskmanager/taskmanager.toml
package config
