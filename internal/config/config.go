package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directories owned by sorter itself, never the organized tree.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Organize contains the settings that shape an organizing pass.
type Organize struct {
	Extensions []string `toml:"extensions"`
	Locale     string   `toml:"locale"`
}

// History controls the optional SQLite journal of completed runs.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for diagnostic log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for sorter.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Organize Organize `toml:"organize"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath is the per-user config file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sorter/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config with every path expanded, the file path consulted, and whether that
// file existed. A missing file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// locate picks the config file. An explicit path is used as given even when
// missing; otherwise the user config and then ./sorter.toml are tried, with
// the user config location reported when neither exists.
func locate(explicit string) (string, bool, error) {
	if explicit != "" {
		expanded, err := expandPath(explicit)
		if err != nil {
			return "", false, err
		}
		found, err := isFile(expanded)
		return expanded, found, err
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	localPath, err := filepath.Abs(localConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, localPath} {
		if found, _ := isFile(candidate); found {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat config: %w", err)
	}
}

// EnsureDirectories creates the state directories sorter writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir, c.LockDir()}
	if c.History.Enabled {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("state directory %s: %w", dir, err)
		}
	}
	return nil
}

// LockDir returns the directory holding per-root run locks.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, lockDirName)
}

// ExpandPath resolves a leading "~" against the home directory and returns
// the cleaned absolute form. An empty value stays empty.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(value, "~"); ok && (rest == "" || os.IsPathSeparator(rest[0])) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		value = home + rest
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("absolute path %q: %w", value, err)
	}
	return abs, nil
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}
