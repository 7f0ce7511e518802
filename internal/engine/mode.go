package engine

import (
	"fmt"
	"strings"
	"time"
)

// Mode identifies a duration preset.
type Mode string

const (
	Focus      Mode = "focus"
	ShortBreak Mode = "short_break"
	LongBreak  Mode = "long_break"
	Custom     Mode = "custom"
)

// Modes lists every mode in display order.
var Modes = []Mode{Focus, ShortBreak, LongBreak, Custom}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Focus, ShortBreak, LongBreak, Custom:
		return true
	}

	return false
}

// Label is the human readable name of the mode.
func (m Mode) Label() string {
	switch m {
	case Focus:
		return "Focus"
	case ShortBreak:
		return "Short break"
	case LongBreak:
		return "Long break"
	case Custom:
		return "Custom"
	}

	return string(m)
}

// ParseMode converts user input such as "focus", "short-break" or "pomodoro"
// to a Mode.
func ParseMode(s string) (Mode, error) {
	normalised := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")

	switch normalised {
	case "focus", "pomodoro", "work":
		return Focus, nil
	case "short_break", "short", "shortbreak":
		return ShortBreak, nil
	case "long_break", "long", "longbreak":
		return LongBreak, nil
	case "custom":
		return Custom, nil
	}

	return "", fmt.Errorf("unknown mode %q", s)
}

// Catalog holds the durations of the named presets and the bounds of the
// custom mode.
type Catalog struct {
	Durations     map[Mode]time.Duration
	CustomDefault time.Duration
	CustomMin     time.Duration
	CustomMax     time.Duration
}

// DefaultCatalog returns the standard pomodoro presets.
func DefaultCatalog() Catalog {
	return Catalog{
		Durations: map[Mode]time.Duration{
			Focus:      25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
		CustomDefault: 60 * time.Minute,
		CustomMin:     10 * time.Minute,
		CustomMax:     180 * time.Minute,
	}
}

// Seconds returns the length of a fixed mode in whole seconds. Custom is
// resolved by the engine, so it reports the catalog default.
func (c Catalog) Seconds(m Mode) int {
	if m == Custom {
		return c.ClampCustom(int(c.CustomDefault / time.Second))
	}

	d, ok := c.Durations[m]
	if !ok || d <= 0 {
		d = DefaultCatalog().Durations[m]
	}

	return int(d / time.Second)
}

// ClampCustom forces secs into the allowed custom range.
func (c Catalog) ClampCustom(secs int) int {
	lo, hi := int(c.CustomMin/time.Second), int(c.CustomMax/time.Second)

	if secs < lo {
		return lo
	}

	if hi > 0 && secs > hi {
		return hi
	}

	return secs
}
