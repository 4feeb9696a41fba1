package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"sorter/internal/config"
	"sorter/internal/failure"
	"sorter/internal/logging"
	"sorter/internal/translit"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	localeFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, localeFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		localeFlag:   localeFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := flagValue(c.configFlag)
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = failure.Wrap(failure.ErrConfiguration, "config", "load", path, err)
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = failure.Wrap(failure.ErrFilesystem, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if level := flagValue(c.logLevelFlag); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if locale := flagValue(c.localeFlag); locale != "" {
		locale = strings.ToLower(locale)
		if !translit.Supported(locale) {
			return failure.Wrap(failure.ErrConfiguration, "config", "apply flags",
				fmt.Sprintf("unsupported locale %q (supported: %s)", locale, strings.Join(translit.Locales(), ", ")), nil)
		}
		cfg.Organize.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		return failure.Wrap(failure.ErrConfiguration, "config", "apply flags", "", err)
	}
	return nil
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, w)
	if err != nil {
		return nil, failure.Wrap(failure.ErrConfiguration, "logging", "create logger", "", err)
	}
	return logger, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
