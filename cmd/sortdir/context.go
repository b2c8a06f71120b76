package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sortdir/internal/config"
	"sortdir/internal/history"
	"sortdir/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// newLogger builds the run logger: console output (when console is non-nil)
// plus a per-invocation file under the state log directory. Old application
// logs are pruned on the way.
func (c *commandContext) newLogger(console io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, logPath, err := logging.NewFromConfig(cfg, console)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     cfg.LogDir(),
		Pattern: logging.AppLogPattern,
		Exclude: []string{logPath},
	})
	return logger, nil
}

// openHistory returns nil when history is disabled or unavailable. A store
// that fails to open is reported and the run proceeds unrecorded.
func (c *commandContext) openHistory(logger *slog.Logger, disabled bool) *history.Store {
	cfg, err := c.ensureConfig()
	if err != nil || disabled || !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable; run continues unrecorded", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check "+cfg.HistoryPath()),
			logging.String(logging.FieldImpact, "this run will not appear in history"),
		)
		return nil
	}
	return store
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
