package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds editor settings stored at ~/.qment/config.
type Config struct {
	PresetPath    string   `yaml:"preset_path,omitempty"`
	RecentProject string   `yaml:"recent_project,omitempty"`
	LogFile       string   `yaml:"log_file,omitempty"`
	LogLevel      string   `yaml:"log_level,omitempty"`
	VimKeys       bool     `yaml:"vim_keys"`
	DefaultGroups []string `yaml:"default_groups,omitempty"`
}

// Dir returns the directory holding the config and log files.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".qment")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		LogFile:       filepath.Join(Dir(), "qment.log"),
		LogLevel:      "info",
		DefaultGroups: []string{"Topic", "Difficulty"},
	}
}

// Load reads and parses the config file. A missing file is reported with an
// error wrapping os.ErrNotExist.
func Load() (*Config, error) {
	path := Path()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk with owner-only permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ParseLevel maps a config log level to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config log_level %q: want debug, info, warn or error", level)
}
