package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOrganizer()
	if err := c.normalizeCategories(); err != nil {
		return err
	}
	c.normalizeRunLog()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SORTDIR_STATE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganizer() {
	patterns := make([]string, 0, len(c.Organizer.ExcludePatterns))
	seen := make(map[string]struct{}, len(c.Organizer.ExcludePatterns))
	for _, pattern := range c.Organizer.ExcludePatterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		patterns = append(patterns, trimmed)
	}
	c.Organizer.ExcludePatterns = patterns
}

// normalizeCategories lower-cases extension keys, adds the leading dot, and
// trims category names. Keys that collapse onto the same extension must agree.
func (c *Config) normalizeCategories() error {
	if len(c.Categories) == 0 {
		c.Categories = nil
		return nil
	}
	normalized := make(map[string]string, len(c.Categories))
	for ext, category := range c.Categories {
		key := NormalizeExtension(ext)
		if key == "" {
			return fmt.Errorf("categories: extension key %q is empty", ext)
		}
		category = strings.TrimSpace(category)
		if existing, ok := normalized[key]; ok && existing != category {
			return fmt.Errorf("categories: %q maps to both %q and %q", key, existing, category)
		}
		normalized[key] = category
	}
	c.Categories = normalized
	return nil
}

func (c *Config) normalizeRunLog() {
	c.RunLog.Prefix = strings.TrimSpace(c.RunLog.Prefix)
	if c.RunLog.Prefix == "" {
		c.RunLog.Prefix = defaultRunLogPrefix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// NormalizeExtension lower-cases ext and ensures a single leading dot.
// Blank input (or a bare dot) yields "".
func NormalizeExtension(ext string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return ""
	}
	return "." + strings.ToLower(trimmed)
}
