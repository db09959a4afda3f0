// Package appdir provides constants and utilities for the .taskmanager directory structure.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the taskmanager state directory.
	Dir = ".taskmanager"

	// DataFileBase is the base name of data files; the backend adds the extension.
	DataFileBase = "tasks"

	// DefaultSchemaFile is the default JSON Schema file name (inside .taskmanager).
	DefaultSchemaFile = "tasks.schema.json"

	// DefaultConfigFile is the default config file name (inside .taskmanager).
	DefaultConfigFile = "taskmanager.toml"
)

// DataPath returns the data file for the given extension within a work directory.
func DataPath(workDir, ext string) string {
	return joinPath(workDir, DataFileBase+"."+ext)
}

// SchemaPath returns the full path to the schema file within a work directory.
func SchemaPath(workDir string) string {
	return joinPath(workDir, DefaultSchemaFile)
}

// ConfigPath returns the full path to the config file within a work directory.
func ConfigPath(workDir string) string {
	return joinPath(workDir, DefaultConfigFile)
}

// DirPath returns the full path to the .taskmanager directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// Ensure creates the .taskmanager directory within a work directory.
func Ensure(workDir string) error {
	if err := os.MkdirAll(DirPath(workDir), 0755); err != nil {
		return fmt.Errorf("create %s: %w", Dir, err)
	}
	return nil
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
