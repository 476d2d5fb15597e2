// Package config tests configuration loading.
package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envKeys = []string{
	"TODOLIST_DATA_DIR",
	"TODOLIST_BACKEND",
	"TODOLIST_SLOT",
	"TODOLIST_LOG_DIR",
	"TODOLIST_LOG_LEVEL",
	"TODOLIST_LOG_FORMAT",
	"TODOLIST_LOG_TIMESTAMPS",
}

// isolate points HOME at a temp dir, clears TODOLIST_* and moves into an
// empty working directory. It returns the fake home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
	return home
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
	home := isolate(t)

	cfg, err := Load(nil, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DataDir != filepath.Join(home, ".todolist") {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.LogDir != filepath.Join(home, ".todolist", "logs") {
		t.Errorf("LogDir: got %q", cfg.LogDir)
	}
	if cfg.Backend != DefaultBackend {
		t.Errorf("Backend: got %q, want %q", cfg.Backend, DefaultBackend)
	}
	if cfg.SlotKey != DefaultSlotKey {
		t.Errorf("SlotKey: got %q, want %q", cfg.SlotKey, DefaultSlotKey)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" || !cfg.LogTimestamps {
		t.Errorf("logging defaults: %+v", cfg)
	}
}

func TestPrecedence(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".todolist", "todolist.toml"), `
backend = "sqlite"
slot_key = "user"
log_level = "debug"
`)
	writeFile(t, "todolist.toml", `
slot_key = "project"
log_format = "json"
`)

	t.Run("files", func(t *testing.T) {
		cfg, err := Load(nil, nil)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Backend != "sqlite" {
			t.Errorf("Backend from user file: got %q", cfg.Backend)
		}
		if cfg.SlotKey != "project" {
			t.Errorf("SlotKey from project file: got %q", cfg.SlotKey)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
			t.Errorf("logging: level=%q format=%q", cfg.LogLevel, cfg.LogFormat)
		}
	})

	t.Run("env over files", func(t *testing.T) {
		t.Setenv("TODOLIST_SLOT", "env")
		t.Setenv("TODOLIST_LOG_TIMESTAMPS", "false")
		cfg, err := Load(nil, nil)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.SlotKey != "env" {
			t.Errorf("SlotKey: got %q, want env", cfg.SlotKey)
		}
		if cfg.LogTimestamps {
			t.Error("LogTimestamps: expected false from env")
		}
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("TODOLIST_SLOT", "env")
		t.Setenv("TODOLIST_BACKEND", "sqlite")
		cfg, err := Load(nil, []string{"--slot", "flag", "--backend=file"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.SlotKey != "flag" || cfg.Backend != "file" {
			t.Errorf("got slot=%q backend=%q", cfg.SlotKey, cfg.Backend)
		}
	})
}

func TestLoadWithSources(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".todolist", "todolist.toml"), `backend = "sqlite"`)
	writeFile(t, ".todolist.toml", `log_level = "warn"`)
	t.Setenv("TODOLIST_LOG_FORMAT", "logfmt")

	cws, err := LoadWithSources(nil, []string{"--slot", "work"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	want := map[string]ConfigSource{
		"data_dir":       SourceDefault,
		"backend":        SourceUserFile,
		"slot_key":       SourceFlag,
		"log_dir":        SourceDefault,
		"log_level":      SourceProjFile,
		"log_format":     SourceEnv,
		"log_timestamps": SourceDefault,
	}
	for field, source := range want {
		if got := cws.Sources[field]; got != source {
			t.Errorf("source of %s: got %q, want %q", field, got, source)
		}
	}
	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v, want user and project files", cws.Files)
	}
	if cws.Config.Value("slot_key") != "work" {
		t.Errorf("Value(slot_key) = %q", cws.Config.Value("slot_key"))
	}
}

func TestRemainingArgs(t *testing.T) {
	isolate(t)
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	_, err := Load(fs, []string{"--backend", "file", "add", "Buy", "milk"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := strings.Join(fs.Args(), " "); got != "add Buy milk" {
		t.Errorf("remaining args: got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		args    []string
		wantErr string
	}{
		{name: "bad backend flag", args: []string{"--backend", "redis"}, wantErr: "invalid backend"},
		{name: "bad slot", args: []string{"--slot", "../x"}, wantErr: "invalid slot key"},
		{name: "bad log level", args: []string{"--log-level", "loud"}, wantErr: "invalid log level"},
		{name: "bad log format", args: []string{"--log-format", "xml"}, wantErr: "invalid log format"},
		{name: "unknown flag", args: []string{"--nope"}, wantErr: "parsing flags"},
		{name: "unknown file key", file: `colour = "blue"`, wantErr: "unknown keys: colour"},
		{name: "malformed file", file: `backend = `, wantErr: "project config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.file != "" {
				writeFile(t, "todolist.toml", tt.file)
			}
			fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			_, err := Load(fs, tt.args)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	t.Setenv("TODOLIST_TEST_DIR", "/srv/tasks")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/lists", filepath.Join(home, "lists")},
		{"$TODOLIST_TEST_DIR/a", "/srv/tasks/a"},
		{"/abs/path", "/abs/path"},
		{"~other", "~other"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigParses(t *testing.T) {
	isolate(t)
	writeFile(t, "todolist.toml", ExampleConfig())
	cfg, err := Load(nil, nil)
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if cfg.Backend != "file" || cfg.SlotKey != "tasks" {
		t.Errorf("unexpected values: %+v", cfg)
	}
}
