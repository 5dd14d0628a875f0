// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Defaults DefaultsConfig `toml:"defaults"`
	Storage  StorageConfig  `toml:"storage"`
	Reminder ReminderConfig `toml:"reminder"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `toml:"addr"` // e.g., "127.0.0.1:8144"
}

// DefaultsConfig seeds new day entries before the user has preferences.
type DefaultsConfig struct {
	WakeTime       string  `toml:"wake_time"`        // e.g., "07:00"
	DayLengthHours float64 `toml:"day_length_hours"` // e.g., 15
}

// StorageConfig selects the persistence backend. Location is a SQLite file
// path or a postgres:// connection string.
type StorageConfig struct {
	Location string `toml:"location"`
}

// ReminderConfig tunes the block-boundary notifier.
type ReminderConfig struct {
	Enabled             bool `toml:"enabled"`
	PollSeconds         int  `toml:"poll_seconds"`          // unfulfilled-block poll interval
	UnfulfilledGraceMin int  `toml:"unfulfilled_grace_min"` // how far back a block counts as recent
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8144",
		},
		Defaults: DefaultsConfig{
			WakeTime:       constants.DefaultWakeTime,
			DayLengthHours: constants.DefaultDayLengthHours,
		},
		Storage: StorageConfig{
			Location: defaultDBPath(),
		},
		Reminder: ReminderConfig{
			Enabled:             true,
			PollSeconds:         60,
			UnfulfilledGraceMin: constants.UnfulfilledGraceMinutes,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "blockday.db"
	}
	return filepath.Join(home, ".config", constants.AppName, "blockday.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", constants.AppName, "config.toml")
}

// Load loads configuration from the default path, merging with defaults and
// env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.Location = expandPath(cfg.Storage.Location)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLOCKDAY_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BLOCKDAY_WAKE_TIME"); v != "" {
		cfg.Defaults.WakeTime = v
	}
	if v := os.Getenv("BLOCKDAY_DB"); v != "" {
		cfg.Storage.Location = v
	}
}

// expandPath expands ~ to the user's home directory. Connection strings are
// passed through untouched.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if err := validation.CheckTimeOfDay(c.Defaults.WakeTime); err != nil {
		return fmt.Errorf("defaults.wake_time: %w", err)
	}
	if err := validation.CheckDayLength(c.Defaults.DayLengthHours); err != nil {
		return fmt.Errorf("defaults.day_length_hours: %w", err)
	}
	if c.Storage.Location == "" {
		return errors.New("storage location must be set")
	}
	if c.Reminder.PollSeconds <= 0 {
		return errors.New("reminder poll_seconds must be positive")
	}
	if c.Reminder.UnfulfilledGraceMin <= 0 {
		return errors.New("reminder unfulfilled_grace_min must be positive")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
