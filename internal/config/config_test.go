// ABOUTME: Tests for fde configuration management.
// ABOUTME: Covers load, save, defaults, environment overrides, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/fde/internal/storage"
)

// isolateEnv points every config source at a fresh temp directory.
func isolateEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvLogLevel, "")
	return tmpDir
}

func TestGetDBPathDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDBPath(); got != storage.DefaultDBPath {
		t.Errorf("GetDBPath() = %q, want %q", got, storage.DefaultDBPath)
	}
}

func TestGetDBPathExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DBPath: "~/fde/ca.sq3"}
	want := filepath.Join(home, "fde/ca.sq3")
	if got := cfg.GetDBPath(); got != want {
		t.Errorf("GetDBPath() = %q, want %q", got, want)
	}
}

func TestGetLogLevel(t *testing.T) {
	if got := (&Config{}).GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q, want info", got)
	}
	if got := (&Config{LogLevel: "DEBUG"}).GetLogLevel(); got != "debug" {
		t.Errorf("GetLogLevel() = %q, want debug", got)
	}
}

func TestDefaultLogPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	want := filepath.Join(tmpDir, "fde", "fde.log")
	if got := (&Config{}).GetLogPath(); got != want {
		t.Errorf("GetLogPath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/fde", filepath.Join(home, "data/fde")},
		{"data/fde", "data/fde"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.DBPath != "" {
		t.Errorf("Expected empty DBPath, got %q", cfg.DBPath)
	}
	if cfg.App.Name != "fde" || cfg.App.Version == "" {
		t.Errorf("Expected app identity to be set, got %+v", cfg.App)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolateEnv(t)

	cfg := &Config{DBPath: "/tmp/fde-test/ca.sq3", LogLevel: "debug"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DBPath != "/tmp/fde-test/ca.sq3" {
		t.Errorf("DBPath mismatch: got %q", loaded.DBPath)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel mismatch: got %q", loaded.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolateEnv(t)

	cfg := &Config{DBPath: "/tmp/from-file.sq3"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv(EnvDBPath, "/tmp/from-env.sq3")
	t.Setenv(EnvLogLevel, "warn")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.GetDBPath() != "/tmp/from-env.sq3" {
		t.Errorf("GetDBPath() = %q, want env value", loaded.GetDBPath())
	}
	if loaded.GetLogLevel() != "warn" {
		t.Errorf("GetLogLevel() = %q, want warn", loaded.GetLogLevel())
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolateEnv(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{DBPath: "ca.sq3"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "fde")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolateEnv(t)

	configDir := filepath.Join(tmpDir, "fde")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := isolateEnv(t)

	want := filepath.Join(tmpDir, "fde", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data", "ca.sq3")

	cfg := &Config{DBPath: dbPath}
	store, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	if store.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", store.Path(), dbPath)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	cfg := &Config{App: DefaultApp()}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// App is never serialized and the other fields have omitempty
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
