package config

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/engine"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Mode          string
	Custom        string
	Title         string
	Description   string
	SessionCmd    string
	Tasks         []string
	DisableNotify bool
	DisableSound  bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Mode:          ctx.String("mode"),
			Custom:        ctx.String("custom"),
			Title:         ctx.String("title"),
			Description:   ctx.String("description"),
			SessionCmd:    ctx.String("session-cmd"),
			Tasks:         ctx.StringSlice("task"),
			DisableNotify: ctx.Bool("disable-notification"),
			DisableSound:  ctx.Bool("mute"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Mode != "" {
		mode, err := engine.ParseMode(opts.Mode)
		if err != nil {
			return err
		}

		c.CLI.Mode = mode
	}

	if opts.Custom != "" {
		dur, err := parseDuration(opts.Custom)
		if err != nil {
			return errInvalidCLIDuration.Fmt("custom", err)
		}

		c.CLI.CustomDuration = dur

		// a custom length implies custom mode
		if c.CLI.Mode == "" {
			c.CLI.Mode = engine.Custom
		}
	}

	c.CLI.Title = strings.TrimSpace(opts.Title)
	c.CLI.Description = strings.TrimSpace(opts.Description)
	c.CLI.Tasks = trimTasks(opts.Tasks)

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.DisableSound {
		c.Notifications.Sound = false
	}

	return nil
}

// trimTasks trims whitespace and drops empty checklist entries.
func trimTasks(tasks []string) []string {
	var trimmed []string

	for _, task := range tasks {
		task = strings.TrimSpace(task)
		if task != "" {
			trimmed = append(trimmed, task)
		}
	}

	return trimmed
}
