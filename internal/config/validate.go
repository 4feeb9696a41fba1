package config

import (
	"errors"
	"fmt"
	"strings"

	"sorter/internal/translit"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganize() error {
	if len(c.Organize.Extensions) == 0 {
		return errors.New("organize.extensions must include at least one extension")
	}
	for _, ext := range c.Organize.Extensions {
		if strings.ContainsAny(ext, `/\*?[] `) {
			return fmt.Errorf("organize.extensions: %q is not a plain extension", ext)
		}
	}
	if !translit.Supported(c.Organize.Locale) {
		return fmt.Errorf("organize.locale: unsupported value %q (supported: %s)", c.Organize.Locale, strings.Join(translit.Locales(), ", "))
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
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
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn or error)", c.Logging.Level)
	}
	return nil
}
