// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
)

// keyLayout is fixed width so that keys sort in chronological order.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

// DayLayout formats a calendar day.
const DayLayout = "2006-01-02"

// Period names a reporting window that ends today.
type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period365Days   Period = "365days"
)

// periodOffsets maps a period to the day offset of its first day.
var periodOffsets = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period365Days:   -364,
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = val / minutesInAnHour
	mins = val % minutesInAnHour

	return
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	return val / secondsInAMinute, val % secondsInAMinute
}

// Clock formats a number of seconds as MM:SS, or H:MM:SS from an hour up.
func Clock(secs int) string {
	if secs < 0 {
		secs = 0
	}

	mins, s := SecsToMinsAndSecs(secs)
	if mins < minutesInAnHour {
		return fmt.Sprintf("%02d:%02d", mins, s)
	}

	h, m := MinsToHoursAndMins(mins)

	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Humanize formats minutes as "1h 05m" or "45m".
func Humanize(mins int) string {
	h, m := MinsToHoursAndMins(mins)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %02dm", h, m)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoundToEnd resets the given time to the last instant of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		int(time.Second-time.Nanosecond),
		t.Location(),
	)
}

// YearBounds returns the first and last instants of year in loc.
func YearBounds(year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)

	return start, end
}

// PeriodBounds resolves a named period relative to now.
func PeriodBounds(p Period, now time.Time) (start, end time.Time, err error) {
	offset, ok := periodOffsets[p]
	if !ok {
		return start, end, fmt.Errorf("unknown period %q", p)
	}

	end = RoundToEnd(now)

	if p == PeriodAllTime {
		return time.Time{}, end, nil
	}

	start = RoundToStart(now.AddDate(0, 0, offset))

	if p == PeriodYesterday {
		end = RoundToEnd(start)
	}

	return start, end, nil
}

// DayKey formats t as a calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}

// FromStr parses natural language dates such as "2 hours ago" or
// "last monday" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	d, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %q as a date: %w", s, err)
	}

	return d.Time, nil
}
