// Package commands defines the promptdeck CLI commands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NemoVonNirgend/promptdeck/internal/core/config"
	"github.com/NemoVonNirgend/promptdeck/internal/deck"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	PresetPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// App is the assembled deck, built in the Before hook. It is nil when
	// no preset path is configured.
	App *deck.App
}

// RequireApp returns the deck or an actionable error when no preset path was
// given.
func (f *Flags) RequireApp() (*deck.App, error) {
	if f.App == nil {
		return nil, fmt.Errorf("no preset configured; pass --preset or set preset.path in %s", f.ConfigPath)
	}
	return f.App, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "promptdeck", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "promptdeck")
}
