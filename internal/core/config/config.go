// Package config handles configuration loading and validation for promptdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Preset    PresetConfig    `yaml:"preset"`
	Organizer OrganizerConfig `yaml:"organizer"`
	Watch     WatchConfig     `yaml:"watch"`
	Database  DatabaseConfig  `yaml:"database"`
	Apply     ApplyConfig     `yaml:"apply"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// PresetConfig locates the host application's preset file.
type PresetConfig struct {
	// Path to the preset JSON file the host application writes.
	Path string `yaml:"path"`
	// WaitTimeoutMS bounds how long startup waits for the preset file to
	// appear before degrading to an empty deck.
	WaitTimeoutMS int `yaml:"wait_timeout_ms"`
}

// OrganizerConfig tunes how prompt labels are grouped into sections.
type OrganizerConfig struct {
	// DividerPatterns are extra regex alternatives recognized as section
	// dividers, on top of the built-ins. Invalid patterns fall back to the
	// built-ins at runtime.
	DividerPatterns []string `yaml:"divider_patterns"`
}

// WatchConfig tunes the preset file watcher.
type WatchConfig struct {
	// Enabled toggles live reload when the host rewrites the preset file.
	Enabled *bool `yaml:"enabled"`
	// DebounceMS collapses bursts of file events into one rebuild.
	DebounceMS int `yaml:"debounce_ms"`
	// Ignore lists glob patterns for sibling files whose events should be
	// dropped (editor swap files, backups).
	Ignore []string `yaml:"ignore"`
}

// DatabaseConfig tunes the local SQLite state database.
type DatabaseConfig struct {
	MaxOpenConns  int `yaml:"max_open_conns"`
	MaxIdleConns  int `yaml:"max_idle_conns"`
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// ApplyConfig tunes snapshot application.
type ApplyConfig struct {
	// ItemDelayMS is the pause between per-item writes when applying a
	// snapshot, so the host can absorb each change before the next.
	ItemDelayMS int `yaml:"item_delay_ms"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Preset: PresetConfig{
			WaitTimeoutMS: 10_000,
		},
		Watch: WatchConfig{
			Enabled:    &enabled,
			DebounceMS: 200,
			Ignore:     []string{"*.tmp", "*.swp", "*~"},
		},
		Database: DatabaseConfig{
			MaxOpenConns:  1,
			MaxIdleConns:  1,
			BusyTimeoutMS: 5_000,
		},
		Apply: ApplyConfig{
			ItemDelayMS: 50,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Preset.WaitTimeoutMS == 0 {
		c.Preset.WaitTimeoutMS = defaults.Preset.WaitTimeoutMS
	}
	if c.Watch.Enabled == nil {
		c.Watch.Enabled = defaults.Watch.Enabled
	}
	if c.Watch.DebounceMS == 0 {
		c.Watch.DebounceMS = defaults.Watch.DebounceMS
	}
	if c.Watch.Ignore == nil {
		c.Watch.Ignore = defaults.Watch.Ignore
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaults.Database.BusyTimeoutMS
	}
	if c.Apply.ItemDelayMS == 0 {
		c.Apply.ItemDelayMS = defaults.Apply.ItemDelayMS
	}
}

// WatchEnabled reports whether live preset reload is on.
func (c *Config) WatchEnabled() bool {
	return c.Watch.Enabled == nil || *c.Watch.Enabled
}

// DebounceInterval returns the watcher debounce window.
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// PresetWaitTimeout returns how long startup waits for the preset file.
func (c *Config) PresetWaitTimeout() time.Duration {
	return time.Duration(c.Preset.WaitTimeoutMS) * time.Millisecond
}

// ApplyItemDelay returns the pause between snapshot apply writes.
func (c *Config) ApplyItemDelay() time.Duration {
	return time.Duration(c.Apply.ItemDelayMS) * time.Millisecond
}

// DatabaseDir returns the directory holding the state database.
func (c *Config) DatabaseDir() string {
	return filepath.Join(c.DataDir, "db")
}
