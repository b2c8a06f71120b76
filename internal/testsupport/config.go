package testsupport

import (
	"path/filepath"
	"testing"

	"sortdir/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose state directory lives in a unique temp
// directory per test. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithCategories sets extension overrides on the test config.
func WithCategories(overrides map[string]string) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Categories == nil {
			b.cfg.Categories = make(map[string]string, len(overrides))
		}
		for ext, name := range overrides {
			b.cfg.Categories[config.NormalizeExtension(ext)] = name
		}
	}
}

// WithoutHistory disables run history on the test config.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithoutRunLog disables run-log files on the test config.
func WithoutRunLog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.RunLog.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
