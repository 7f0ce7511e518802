package config

import (
	"regexp"
	"strings"
	"time"
)

var (
	// Minimum and maximum duration constraints.
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	// Absolute range of the custom preset.
	minCustomDuration = 10 * time.Minute
	maxCustomDuration = 180 * time.Minute

	minTickInterval = 50 * time.Millisecond
	maxTickInterval = time.Second

	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSessionConfig(c.Focus, "focus"); err != nil {
		return err
	}

	if err := c.validateSessionConfig(c.ShortBreak, "short break"); err != nil {
		return err
	}

	if err := c.validateSessionConfig(c.LongBreak, "long break"); err != nil {
		return err
	}

	if err := c.validateSessionRelationships(); err != nil {
		return err
	}

	if err := c.validateCustom(); err != nil {
		return err
	}

	if err := c.validateTimer(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Profile.UserID) == "" {
		return errEmptyProfile
	}

	return nil
}

// validateSessionConfig validates an individual SessionConfig.
func (c *Config) validateSessionConfig(
	sc SessionConfig,
	sessionType string,
) error {
	if sc.Duration < minSessionDuration || sc.Duration > maxSessionDuration {
		return errInvalidDuration.Fmt(
			sessionType,
			minSessionDuration,
			maxSessionDuration,
		)
	}

	if strings.TrimSpace(sc.Message) == "" {
		return errEmptyMsg.Fmt(sessionType)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(sessionType, sc.Color)
	}

	return nil
}

// validateSessionRelationships validates logical relationships between sessions.
func (c *Config) validateSessionRelationships() error {
	if c.ShortBreak.Duration >= c.Focus.Duration {
		return errShortBreakTooLong.Fmt(c.ShortBreak.Duration, c.Focus.Duration)
	}

	if c.LongBreak.Duration < c.ShortBreak.Duration {
		return errLongBreakTooShort.Fmt(
			c.LongBreak.Duration,
			c.ShortBreak.Duration,
		)
	}

	return nil
}

func (c *Config) validateCustom() error {
	cc := c.Custom

	if cc.Min < minCustomDuration || cc.Max > maxCustomDuration || cc.Min > cc.Max {
		return errInvalidCustomRange.Fmt(
			cc.Min,
			cc.Max,
			minCustomDuration,
			maxCustomDuration,
		)
	}

	if cc.Step <= 0 || cc.Step > cc.Max-cc.Min {
		return errInvalidCustomStep.Fmt(cc.Step)
	}

	if cc.Duration < cc.Min || cc.Duration > cc.Max {
		return errInvalidDuration.Fmt("custom", cc.Min, cc.Max)
	}

	if d := c.CLI.CustomDuration; d != 0 && (d < cc.Min || d > cc.Max) {
		return errInvalidDuration.Fmt("custom", cc.Min, cc.Max)
	}

	if strings.TrimSpace(cc.Message) == "" {
		return errEmptyMsg.Fmt("custom")
	}

	if !hexColorRegex.MatchString(cc.Color) {
		return errInvalidColor.Fmt("custom", cc.Color)
	}

	return nil
}

func (c *Config) validateTimer() error {
	t := c.Timer

	if t.TickInterval < minTickInterval || t.TickInterval > maxTickInterval {
		return errInvalidTickInterval.Fmt(minTickInterval, maxTickInterval)
	}

	if t.AnomalyThreshold <= t.TickInterval {
		return errInvalidAnomalyThreshold.Fmt(t.AnomalyThreshold, t.TickInterval)
	}

	return nil
}
