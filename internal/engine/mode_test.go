package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"focus":       Focus,
		"Pomodoro":    Focus,
		"short-break": ShortBreak,
		"short":       ShortBreak,
		"LONG_BREAK":  LongBreak,
		" custom ":    Custom,
	}

	for in, want := range cases {
		got, err := ParseMode(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("nap")
	assert.Error(t, err)
}

func TestCatalogSeconds(t *testing.T) {
	c := Catalog{
		Durations: map[Mode]time.Duration{
			Focus: 50 * time.Minute,
		},
		CustomDefault: 5 * time.Minute,
		CustomMin:     10 * time.Minute,
		CustomMax:     3 * time.Hour,
	}

	assert.Equal(t, 3000, c.Seconds(Focus))
	// missing presets fall back to the standard durations
	assert.Equal(t, 300, c.Seconds(ShortBreak))
	assert.Equal(t, 600, c.Seconds(Custom))
}

func TestSecondsUntilRoundsUp(t *testing.T) {
	now := time.Unix(1000, 0)

	assert.Equal(t, 30, secondsUntil(now.Add(30*time.Second), now))
	assert.Equal(t, 30, secondsUntil(now.Add(29001*time.Millisecond), now))
	assert.Equal(t, 1, secondsUntil(now.Add(time.Millisecond), now))
	assert.Equal(t, 0, secondsUntil(now, now))
	assert.LessOrEqual(t, secondsUntil(now.Add(-1500*time.Millisecond), now), 0)
}

func TestStatus(t *testing.T) {
	cases := []struct {
		state State
		want  Status
	}{
		{State{TotalSeconds: 300, RemainingSeconds: 300}, Idle},
		{State{TotalSeconds: 300, RemainingSeconds: 120, Running: true}, Running},
		{State{TotalSeconds: 300, RemainingSeconds: 120}, Paused},
		{State{TotalSeconds: 300, RemainingSeconds: 0}, Completed},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.state.Status(), tc.want.String())
	}
}
