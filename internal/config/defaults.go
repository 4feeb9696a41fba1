package config

import "sorter/internal/category"

const (
	defaultStateDir  = "~/.local/share/sorter"
	defaultLocale    = "uk"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	historyFileName  = "history.db"
	lockDirName      = "locks"
	localConfigName  = "sorter.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	extensions := make([]string, len(category.DefaultExtensions))
	copy(extensions, category.DefaultExtensions)
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Organize: Organize{
			Extensions: extensions,
			Locale:     defaultLocale,
		},
		History: History{
			Enabled: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
