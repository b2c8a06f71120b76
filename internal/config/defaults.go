package config

const (
	defaultConfigPath        = "~/.config/sortdir/config.toml"
	defaultStateDir          = "~/.local/share/sortdir"
	defaultRunLogPrefix      = "sortdir-log"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 30
	defaultRunLogExcludeGlob = defaultRunLogPrefix + "-*.txt"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Organizer: Organizer{
			ExcludeSelf:     true,
			ExcludePatterns: []string{defaultRunLogExcludeGlob},
		},
		RunLog: RunLog{
			Enabled: true,
			Prefix:  defaultRunLogPrefix,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
