package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("watch.debounce_ms", c.Watch.DebounceMS, nonNegative),
		criterio.Run("preset.wait_timeout_ms", c.Preset.WaitTimeoutMS, nonNegative),
		criterio.Run("apply.item_delay_ms", c.Apply.ItemDelayMS, nonNegative),
		criterio.Run("database.max_open_conns", c.Database.MaxOpenConns, atLeastOne),
		criterio.Run("database.max_idle_conns", c.Database.MaxIdleConns, atLeastOne),
		criterio.Run("database.busy_timeout_ms", c.Database.BusyTimeoutMS, nonNegative),
		c.validateDividerPatterns(),
		c.validateIgnoreGlobs(),
	)
}

// ValidateDeep performs comprehensive validation including file accessibility.
// The configPath argument specifies the config file location to validate
// (empty string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("preset.path", filepath.Dir(c.Preset.Path), presetDirExists(c.Preset.Path)),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Preset.Path == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Preset",
			Message:  "no preset path configured; pass one with --preset or set preset.path",
		})
	}

	if !c.WatchEnabled() {
		warnings = append(warnings, ValidationWarning{
			Category: "Watch",
			Message:  "live reload disabled; external preset changes need a manual rebuild",
		})
	}

	return warnings
}

// validateDividerPatterns checks custom divider patterns are valid regex. The
// organizer falls back to built-ins at runtime, but config validation should
// still surface the mistake.
func (c *Config) validateDividerPatterns() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Organizer.DividerPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			errs = errs.Append(fmt.Sprintf("organizer.divider_patterns[%d]", i), fmt.Errorf("invalid regex %q: %w", pattern, err))
		}
	}
	return errs.ToError()
}

// validateIgnoreGlobs checks watch ignore patterns parse as globs.
func (c *Config) validateIgnoreGlobs() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Watch.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("watch.ignore[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func notEmpty(value string) error {
	if value == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func nonNegative(value int) error {
	if value < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func atLeastOne(value int) error {
	if value < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// presetDirExists validates that the directory holding the preset file exists.
// The file itself may not exist yet; the watcher waits for it.
func presetDirExists(presetPath string) func(string) error {
	return func(dir string) error {
		if presetPath == "" {
			return nil
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("preset directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("preset parent %s is not a directory", dir)
		}
		return nil
	}
}
