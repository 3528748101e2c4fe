// ABOUTME: fde configuration: application identity, storage location and logging.
// ABOUTME: Loaded once at startup from a JSON file with environment overrides.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fde/internal/storage"
	"github.com/joho/godotenv"
)

// App is the read-only identity of the program.
type App struct {
	Name        string
	Author      string
	Version     string
	VersionDate string
}

// DefaultApp returns the identity shown in the welcome banner.
func DefaultApp() App {
	return App{
		Name:        "fde",
		Author:      "Thierry Probst <thierry.probst@free.fr>",
		Version:     "1.0.0",
		VersionDate: "23/04/2023",
	}
}

// Config stores fde configuration.
type Config struct {
	// DBPath is the SQLite file holding the CA table.
	// Supports ~ expansion. Defaults to ./data/fildeclair.sq3.
	DBPath string `json:"db_path,omitempty"`

	// LogPath is the rolling diagnostic log file. Defaults to the XDG state directory.
	LogPath string `json:"log_path,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`

	App App `json:"-"`
}

// Environment variables overriding the file values.
const (
	EnvDBPath   = "FDE_DB_PATH"
	EnvLogPath  = "FDE_LOG_PATH"
	EnvLogLevel = "FDE_LOG_LEVEL"
)

// GetDBPath returns the configured database path with ~ expanded.
func (c *Config) GetDBPath() string {
	if c.DBPath == "" {
		return storage.DefaultDBPath
	}
	return ExpandPath(c.DBPath)
}

// GetLogPath returns the configured log path with ~ expanded.
func (c *Config) GetLogPath() string {
	if c.LogPath == "" {
		return DefaultLogPath()
	}
	return ExpandPath(c.LogPath)
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return strings.ToLower(c.LogLevel)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates the Store at the configured location.
func (c *Config) OpenStorage(opts ...storage.Option) (*storage.Store, error) {
	return storage.New(c.GetDBPath(), opts...)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fde", "config.json")
}

// DefaultLogPath returns the log file location following the XDG spec.
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, _ := os.UserHomeDir()
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "fde", "fde.log")
}

// Load reads config from disk, then applies .env and environment overrides.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(GetConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.App = DefaultApp()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
