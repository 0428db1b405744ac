// Package config loads and saves goalpace's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all goalpace configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Goal       GoalConfig       `toml:"goal"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds storage locations.
type GeneralConfig struct {
	DBPath  string `toml:"db_path,omitempty"`
	DataDir string `toml:"data_dir,omitempty"` // default directory for `goalpace import`
}

// GoalConfig holds the goal settings the engine reads.
type GoalConfig struct {
	Mode            string  `toml:"mode"` // "single" or "multi"
	MonthlyTarget   float64 `toml:"monthly_target"`
	BehindThreshold float64 `toml:"behind_threshold"`
	Currency        string  `toml:"currency"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr           string `toml:"addr"`
	IntervalSec    int    `toml:"interval_sec"`
	DigestSchedule string `toml:"digest_schedule"` // cron spec with seconds field
	LogFile        string `toml:"log_file,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

const (
	ModeSingle = "single"
	ModeMulti  = "multi"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Goal: GoalConfig{
			Mode:            ModeSingle,
			MonthlyTarget:   30,
			BehindThreshold: 70,
			Currency:        "¥",
		},
		Daemon: DaemonConfig{
			Addr:           "127.0.0.1:8788",
			IntervalSec:    30,
			DigestSchedule: "0 0 21 * * *",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goalpace")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "goalpace")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "goalpace")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "goalpace")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DBPath returns the database path, falling back to the data directory.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "goalpace.db")
}

// Load reads the config file at path, returning defaults if it doesn't exist.
// An empty path means ConfigPath().
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path. An empty path means ConfigPath().
func Save(cfg Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists(path string) bool {
	if path == "" {
		path = ConfigPath()
	}
	_, err := os.Stat(path)
	return err == nil
}

// ApplyEnv overrides cfg from GOALPACE_DB, GOALPACE_MONTHLY_TARGET and
// GOALPACE_THEME. A malformed monthly target is reported and ignored.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("GOALPACE_DB"); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv("GOALPACE_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv("GOALPACE_MONTHLY_TARGET"); v != "" {
		target, err := strconv.ParseFloat(v, 64)
		if err != nil || target < 0 {
			return fmt.Errorf("GOALPACE_MONTHLY_TARGET=%q: not a non-negative number", v)
		}
		cfg.Goal.MonthlyTarget = target
	}
	return nil
}
