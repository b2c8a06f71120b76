package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"sortdir/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	if err := c.validateOrganizer(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateRunLog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganizer() error {
	for _, pattern := range c.Organizer.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("organizer.exclude_patterns: invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateCategories() error {
	keys := make([]string, 0, len(c.Categories))
	for ext := range c.Categories {
		keys = append(keys, ext)
	}
	sort.Strings(keys)
	for _, ext := range keys {
		if err := ValidateCategoryName(c.Categories[ext]); err != nil {
			return fmt.Errorf("categories.%q: %w", ext, err)
		}
	}
	return nil
}

func (c *Config) validateRunLog() error {
	if strings.ContainsAny(c.RunLog.Prefix, `/\`) {
		return fmt.Errorf("run_log.prefix must not contain path separators: %q", c.RunLog.Prefix)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// ValidateCategoryName reports whether name is usable as a direct child
// folder of the organized directory.
func ValidateCategoryName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("category name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("category name %q is reserved", name)
	case textutil.SanitizeFileName(name) != name:
		return fmt.Errorf("category name %q contains characters unsafe for folder names", name)
	}
	return nil
}
