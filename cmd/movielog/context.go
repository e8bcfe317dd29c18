package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"movielog/internal/config"
	"movielog/internal/history"
	"movielog/internal/logbook"
	"movielog/internal/logging"
	"movielog/internal/services"
	"movielog/internal/settings"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "load config", "", err)
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = services.Wrap(services.ErrValidation, "cli", "log level", "", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "ensure directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so captured test output and the
// terminal see the same records. A configured log file is appended either way.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfigTo(cfg, cmd.ErrOrStderr())
}

// withService builds a logbook service for one command run. The history
// store, when enabled, is opened for the duration of fn.
func (c *commandContext) withService(cmd *cobra.Command, fn func(context.Context, *logbook.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return err
	}

	opts := []logbook.Option{logbook.WithLogger(logger)}
	if prompter := conflictPrompter(cmd); prompter != nil {
		opts = append(opts, logbook.WithPrompter(prompter))
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
				logging.String(logging.FieldPath, cfg.HistoryPath()),
				logging.Error(err),
				logging.String(logging.FieldImpact, "saved notes will not be recorded"),
			)
		} else {
			defer store.Close()
			opts = append(opts, logbook.WithHistory(store))
		}
	}

	svc := logbook.New(cfg, settings.NewFileStore(cfg.Paths.SettingsPath), opts...)
	ctx := services.WithRequestID(commandCtx(cmd), uuid.NewString())
	return fn(ctx, svc)
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// conflictPrompter returns a line prompter when stdin is interactive. A
// reader that is not a file (as set through cobra's SetIn) counts as
// interactive; a redirected or piped file does not.
func conflictPrompter(cmd *cobra.Command) logbook.Prompter {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return nil
		}
	}
	return logbook.LinePrompter{In: in, Out: cmd.ErrOrStderr()}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
