package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears every TASKMANAGER_ variable.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for suffix := range envVars {
		t.Setenv(EnvPrefix+suffix, "")
	}
	t.Chdir(work)
	return home, work
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	home, work := isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Backend != DefaultBackend {
		t.Errorf("Backend: got %q, want %q", cfg.Backend, DefaultBackend)
	}
	if cfg.View != DefaultView {
		t.Errorf("View: got %q, want %q", cfg.View, DefaultView)
	}
	if !cfg.Watch {
		t.Error("Watch: got false, want true")
	}
	if cfg.ValidateSchema {
		t.Error("ValidateSchema: got true, want false")
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("log: got %q/%q, want %q/%q", cfg.LogLevel, cfg.LogFormat, DefaultLogLevel, DefaultLogFormat)
	}
	if want := filepath.Join(home, ".taskmanager", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	if want := filepath.Join(".taskmanager", "tasks.json"); !strings.HasSuffix(cfg.DataFile, want) || !filepath.IsAbs(cfg.DataFile) {
		t.Errorf("DataFile: got %q, want absolute path ending in %q", cfg.DataFile, want)
	}
	if cfg.ProjectRoot == "" {
		t.Errorf("ProjectRoot: got empty, want %q", work)
	}
}

func TestDataFileFollowsBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"csv", "tasks.csv"},
		{"XML", "tasks.xml"},
		{"toml", "tasks.toml"},
		{"yaml", "tasks.yaml"},
		{"sqlite", "tasks.sqlite3"},
		{"sqlite3", "tasks.sqlite3"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			isolate(t)
			cfg, err := Load(newFlagSet(), []string{"-backend", tt.backend})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := filepath.Base(cfg.DataFile); got != tt.want {
				t.Errorf("DataFile: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemoryBackendHasNoDataFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlagSet(), []string{"-backend", "memory", "-data", "ignored.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "" {
		t.Errorf("DataFile: got %q, want empty", cfg.DataFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKMANAGER_BACKEND", "csv")
	t.Setenv("TASKMANAGER_WATCH", "off")
	t.Setenv("TASKMANAGER_VIEW", "chart")
	t.Setenv("TASKMANAGER_LOG_LEVEL", "debug")
	t.Setenv("TASKMANAGER_VALIDATE_SCHEMA", "yes")

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.Backend != "csv" {
		t.Errorf("Backend: got %q, want csv", cfg.Backend)
	}
	if cfg.Watch {
		t.Error("Watch: got true, want false")
	}
	if cfg.View != "chart" {
		t.Errorf("View: got %q, want chart", cfg.View)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if !cfg.ValidateSchema {
		t.Error("ValidateSchema: got false, want true")
	}
	for _, field := range []string{"backend", "watch", "view", "log_level", "validate_schema"} {
		if got := cws.Sources[field]; got != SourceEnv {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, SourceEnv)
		}
	}
	if got := cws.Sources["log_format"]; got != SourceDefault {
		t.Errorf("Sources[log_format]: got %q, want %q", got, SourceDefault)
	}
}

func TestLoadConfigFiles(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, ".taskmanager", "taskmanager.toml"), `
backend = "yaml"
view = "rows"
log_level = "warn"
`)
	writeFile(t, filepath.Join(work, "taskmanager.toml"), `
view = "columns"
data_file = "my-tasks.yaml"
`)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.Backend != "yaml" {
		t.Errorf("Backend: got %q, want yaml", cfg.Backend)
	}
	if cfg.View != "columns" {
		t.Errorf("View: got %q, want columns", cfg.View)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if filepath.Base(cfg.DataFile) != "my-tasks.yaml" || !filepath.IsAbs(cfg.DataFile) {
		t.Errorf("DataFile: got %q, want absolute my-tasks.yaml", cfg.DataFile)
	}

	want := map[string]ConfigSource{
		"backend":   SourceUserFile,
		"log_level": SourceUserFile,
		"view":      SourceProjFile,
		"data_file": SourceProjFile,
		"watch":     SourceDefault,
	}
	for field, source := range want {
		if got := cws.Sources[field]; got != source {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, source)
		}
	}
	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v, want two files", cws.Files)
	}
	if got := cws.GetConfigFile(); got != "taskmanager.toml" {
		t.Errorf("GetConfigFile: got %q, want taskmanager.toml", got)
	}
}

func TestProjectConfigInStateDir(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".taskmanager", "taskmanager.toml"), `backend = "toml"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "toml" {
		t.Errorf("Backend: got %q, want toml", cfg.Backend)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", `colour = "red"`, "unknown key"},
		{"bad syntax", `backend = `, "loading project config file"},
		{"bad backend", `backend = "postgres"`, "postgres"},
		{"bad view", `view = "kanban"`, "unknown view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, work := isolate(t)
			writeFile(t, filepath.Join(work, "taskmanager.toml"), tt.content)

			_, err := Load(newFlagSet(), nil)
			if err == nil {
				t.Fatal("Load: expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error: got %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	isolate(t)
	t.Setenv("TASKMANAGER_VIEW", "chart")
	t.Setenv("TASKMANAGER_LOG_FORMAT", "json")

	args := []string{"-view", "rows", "-watch=false", "-log-caller", "-schema", "schema.json", "-validate-schema"}
	cws, err := LoadWithSources(newFlagSet(), args)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.View != "rows" {
		t.Errorf("View: got %q, want rows", cfg.View)
	}
	if cfg.Watch {
		t.Error("Watch: got true, want false")
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if !filepath.IsAbs(cfg.SchemaFile) || filepath.Base(cfg.SchemaFile) != "schema.json" {
		t.Errorf("SchemaFile: got %q, want absolute schema.json", cfg.SchemaFile)
	}
	if len(cfg.StoreOptions()) != 1 {
		t.Errorf("StoreOptions: got %d options, want 1", len(cfg.StoreOptions()))
	}
	if cws.Sources["view"] != SourceFlag || cws.Sources["log_format"] != SourceEnv {
		t.Errorf("Sources: got view=%q log_format=%q", cws.Sources["view"], cws.Sources["log_format"])
	}
}

func TestParseFlagsLeavesPositionalArgs(t *testing.T) {
	isolate(t)
	fs := newFlagSet()
	if _, err := Load(fs, []string{"-backend", "csv", "add", "title"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "add" {
		t.Errorf("Args: got %v, want [add title]", got)
	}
}

func TestPrint(t *testing.T) {
	isolate(t)
	cws, err := LoadWithSources(newFlagSet(), []string{"-backend", "csv"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	var buf bytes.Buffer
	cws.Print(&buf)
	out := buf.String()

	for _, want := range []string{"# no config file found", `backend`, `"csv"`, "# flag", "# default"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output missing %q:\n%s", want, out)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "taskmanager.toml"), ExampleConfig())

	if _, err := Load(newFlagSet(), nil); err != nil {
		t.Errorf("Load with example config: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv("TM_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/logs", filepath.Join(home, "logs")},
		{"$TM_TEST_DIR/tasks", "/data/tasks"},
		{"/abs/path", "/abs/path"},
	}
	if runtime.GOOS == "windows" {
		return
	}

	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandWindowsEnv(t *testing.T) {
	t.Setenv("TM_APPDATA", `C:\Users\me`)

	tests := []struct {
		in   string
		want string
	}{
		{`%TM_APPDATA%\tm`, `C:\Users\me\tm`},
		{`%TM_MISSING%\tm`, `%TM_MISSING%\tm`},
		{`100%%`, `100%%`},
		{`no vars`, `no vars`},
	}

	for _, tt := range tests {
		if got := expandWindowsEnv(tt.in); got != tt.want {
			t.Errorf("expandWindowsEnv(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{" yes ", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := boolFromString(tt.in); got != tt.want {
			t.Errorf("boolFromString(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
