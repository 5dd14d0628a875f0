package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != "127.0.0.1:8144" {
		t.Errorf("expected addr 127.0.0.1:8144, got %s", cfg.Server.Addr)
	}
	if cfg.Defaults.WakeTime != "07:00" {
		t.Errorf("expected wake_time 07:00, got %s", cfg.Defaults.WakeTime)
	}
	if cfg.Defaults.DayLengthHours != 15 {
		t.Errorf("expected day_length_hours 15, got %v", cfg.Defaults.DayLengthHours)
	}
	if !cfg.Reminder.Enabled {
		t.Error("expected reminders enabled by default")
	}
	if cfg.Reminder.PollSeconds != 60 {
		t.Errorf("expected poll_seconds 60, got %d", cfg.Reminder.PollSeconds)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Defaults.WakeTime != "07:00" {
		t.Errorf("expected default wake_time, got %s", cfg.Defaults.WakeTime)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[server]
addr = "0.0.0.0:9000"

[defaults]
wake_time = "06:30"
day_length_hours = 16.5

[storage]
location = "/tmp/test.db"

[reminder]
enabled = false
poll_seconds = 30
unfulfilled_grace_min = 10
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr 0.0.0.0:9000, got %s", cfg.Server.Addr)
	}
	if cfg.Defaults.WakeTime != "06:30" {
		t.Errorf("expected wake_time 06:30, got %s", cfg.Defaults.WakeTime)
	}
	if cfg.Defaults.DayLengthHours != 16.5 {
		t.Errorf("expected day_length_hours 16.5, got %v", cfg.Defaults.DayLengthHours)
	}
	if cfg.Storage.Location != "/tmp/test.db" {
		t.Errorf("expected location /tmp/test.db, got %s", cfg.Storage.Location)
	}
	if cfg.Reminder.Enabled {
		t.Error("expected reminders disabled")
	}
	if cfg.Reminder.PollSeconds != 30 {
		t.Errorf("expected poll_seconds 30, got %d", cfg.Reminder.PollSeconds)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[server]
addr = "127.0.0.1:8000"

[defaults]
wake_time = "08:00"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("BLOCKDAY_ADDR", "127.0.0.1:9999")
	t.Setenv("BLOCKDAY_DB", "/tmp/env.db")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("expected addr from env, got %s", cfg.Server.Addr)
	}
	// File value should be kept when no env override
	if cfg.Defaults.WakeTime != "08:00" {
		t.Errorf("expected wake_time 08:00 from file, got %s", cfg.Defaults.WakeTime)
	}
	if cfg.Storage.Location != "/tmp/env.db" {
		t.Errorf("expected location from env, got %s", cfg.Storage.Location)
	}
}

func TestValidate_InvalidWakeTime(t *testing.T) {
	cfg := Default()
	cfg.Defaults.WakeTime = "7:00" // Missing leading zero

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid wake_time")
	}
}

func TestValidate_DayLengthOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Defaults.DayLengthHours = 25

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for day_length_hours > 24")
	}
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty addr")
	}
}

func TestValidate_BadPollInterval(t *testing.T) {
	cfg := Default()
	cfg.Reminder.PollSeconds = 0

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero poll_seconds")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
		{"postgres://localhost/blockday", "postgres://localhost/blockday"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Defaults.WakeTime = "06:00"
	cfg.Defaults.DayLengthHours = 14
	cfg.Storage.Location = filepath.Join(tmpDir, "blockday.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Defaults.WakeTime != "06:00" {
		t.Errorf("expected wake_time 06:00, got %s", loaded.Defaults.WakeTime)
	}
	if loaded.Defaults.DayLengthHours != 14 {
		t.Errorf("expected day_length_hours 14, got %v", loaded.Defaults.DayLengthHours)
	}
}
