package config

import (
	"errors"
	"os"
	"os/user"
	"strings"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyFocusDuration         = "focus.duration"
	keyFocusMessage          = "focus.message"
	keyFocusColor            = "focus.color"
	keyShortBreakDuration    = "short_break.duration"
	keyShortBreakMessage     = "short_break.message"
	keyShortBreakColor       = "short_break.color"
	keyLongBreakDuration     = "long_break.duration"
	keyLongBreakMessage      = "long_break.message"
	keyLongBreakColor        = "long_break.color"
	keyCustomDuration        = "custom.duration"
	keyCustomMessage         = "custom.message"
	keyCustomColor           = "custom.color"
	keyCustomMin             = "custom.min"
	keyCustomMax             = "custom.max"
	keyCustomStep            = "custom.step"
	keyTickInterval          = "timer.tick_interval"
	keyAnomalyThreshold      = "timer.anomaly_threshold"
	keyProfileUserID         = "profile.user_id"
	keyProfileName           = "profile.name"
	keyNotificationsEnabled  = "notifications.enabled"
	keyNotificationsSound    = "notifications.sound"
	keySessionCmd            = "settings.cmd"
	keyTwentyFourHour        = "settings.24hr_clock"
	keyDarkTheme             = "settings.dark_theme"
	keyServerAddr            = "server.addr"
	defaultProfileIdentifier = "me"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, creating it with default values if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults. Values already present on c
// (from the first-run prompt) take precedence over the built-in defaults so
// that they end up in the written config file.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyFocusDuration, "25m")
	v.SetDefault(keyFocusMessage, "Focus on your task")
	v.SetDefault(keyFocusColor, "#B0DB43")
	v.SetDefault(keyShortBreakDuration, "5m")
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyLongBreakDuration, "15m")
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyCustomDuration, "60m")
	v.SetDefault(keyCustomMessage, "Deep work")
	v.SetDefault(keyCustomColor, "#F4A259")
	v.SetDefault(keyCustomMin, "10m")
	v.SetDefault(keyCustomMax, "180m")
	v.SetDefault(keyCustomStep, "5m")
	v.SetDefault(keyTickInterval, "200ms")
	v.SetDefault(keyAnomalyThreshold, "5s")
	v.SetDefault(keyProfileUserID, defaultUser())
	v.SetDefault(keyProfileName, defaultUser())
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationsSound, true)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyServerAddr, "127.0.0.1:1111")

	if c.Focus.Duration > 0 {
		v.SetDefault(keyFocusDuration, c.Focus.Duration.String())
	}

	if c.ShortBreak.Duration > 0 {
		v.SetDefault(keyShortBreakDuration, c.ShortBreak.Duration.String())
	}

	if c.LongBreak.Duration > 0 {
		v.SetDefault(keyLongBreakDuration, c.LongBreak.Duration.String())
	}

	if c.Custom.Duration > 0 {
		v.SetDefault(keyCustomDuration, c.Custom.Duration.String())
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	cli := c.CLI

	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.CLI = cli

	return nil
}

// defaultUser names the profile after the OS account.
func defaultUser() string {
	u, err := user.Current()
	if err != nil || strings.TrimSpace(u.Username) == "" {
		return defaultProfileIdentifier
	}

	return u.Username
}
