// Package config loads focuslog settings from the config file, the first-run
// prompt and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/focuslog/focuslog/internal/engine"
)

type (
	// Config holds all configuration settings
	Config struct {
		CLI           CLIConfig          `mapstructure:"-"`
		Focus         SessionConfig      `mapstructure:"focus"`
		ShortBreak    SessionConfig      `mapstructure:"short_break"`
		LongBreak     SessionConfig      `mapstructure:"long_break"`
		Profile       ProfileConfig      `mapstructure:"profile"`
		Server        ServerConfig       `mapstructure:"server"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Custom        CustomConfig       `mapstructure:"custom"`
		Timer         TimerConfig        `mapstructure:"timer"`
		Notifications NotificationConfig `mapstructure:"notifications"`
	}

	// SessionConfig holds the settings of a fixed duration preset
	SessionConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Duration time.Duration `mapstructure:"duration"`
	}

	// CustomConfig holds the custom preset and the range it may be set to
	CustomConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Duration time.Duration `mapstructure:"duration"`
		Min      time.Duration `mapstructure:"min"`
		Max      time.Duration `mapstructure:"max"`
		Step     time.Duration `mapstructure:"step"`
	}

	// TimerConfig tunes the countdown engine
	TimerConfig struct {
		TickInterval     time.Duration `mapstructure:"tick_interval"`
		AnomalyThreshold time.Duration `mapstructure:"anomaly_threshold"`
	}

	// ProfileConfig identifies the user sessions are recorded for
	ProfileConfig struct {
		UserID string `mapstructure:"user_id"`
		Name   string `mapstructure:"name"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
		Sound   bool `mapstructure:"sound"`
	}

	// SettingsConfig holds miscellaneous settings
	SettingsConfig struct {
		Cmd            string `mapstructure:"cmd"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
		DarkTheme      bool   `mapstructure:"dark_theme"`
	}

	// ServerConfig holds the HTTP API settings
	ServerConfig struct {
		Addr string `mapstructure:"addr"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Mode           engine.Mode
		Title          string
		Description    string
		Tasks          []string
		CustomDuration time.Duration
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Catalog converts the duration presets for the timer engine.
func (c *Config) Catalog() engine.Catalog {
	return engine.Catalog{
		Durations: map[engine.Mode]time.Duration{
			engine.Focus:      c.Focus.Duration,
			engine.ShortBreak: c.ShortBreak.Duration,
			engine.LongBreak:  c.LongBreak.Duration,
		},
		CustomDefault: c.Custom.Duration,
		CustomMin:     c.Custom.Min,
		CustomMax:     c.Custom.Max,
	}
}

// Message returns the configured message for mode.
func (c *Config) Message(mode engine.Mode) string {
	switch mode {
	case engine.ShortBreak:
		return c.ShortBreak.Message
	case engine.LongBreak:
		return c.LongBreak.Message
	case engine.Custom:
		return c.Custom.Message
	}

	return c.Focus.Message
}

// Color returns the configured hex colour for mode.
func (c *Config) Color(mode engine.Mode) string {
	switch mode {
	case engine.ShortBreak:
		return c.ShortBreak.Color
	case engine.LongBreak:
		return c.LongBreak.Color
	case engine.Custom:
		return c.Custom.Color
	}

	return c.Focus.Color
}

// TimeFormat is the layout used to print wall-clock times.
func (c *Config) TimeFormat() string {
	if c.Settings.TwentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}

// parseDuration accepts duration strings, treating bare numbers as minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
