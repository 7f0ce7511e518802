package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/timeutil"
)

const heatCell = "■"

// heatColors is indexed by intensity level.
var heatColors = [...]lipgloss.Color{
	"#2D333B",
	"#0E4429",
	"#006D32",
	"#26A641",
	"#39D353",
}

// HeatLevel maps the minutes logged in a day to an intensity level from 0
// (nothing logged) to 4.
func HeatLevel(mins int) int {
	switch {
	case mins <= 0:
		return 0
	case mins < 30:
		return 1
	case mins < 60:
		return 2
	case mins < 120:
		return 3
	default:
		return 4
	}
}

func cell(level int) string {
	return lipgloss.NewStyle().Foreground(heatColors[level]).Render(heatCell)
}

// Heatmap renders a year of activity as a weekday by week grid.
func Heatmap(days []models.DayActivity, year int, loc *time.Location) string {
	mins := make(map[string]int, len(days))
	for _, d := range days {
		mins[d.Date] = d.Minutes
	}

	first, _ := timeutil.YearBounds(year, loc)
	// the grid starts on the Sunday on or before January 1st
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))

	weeks := 0
	for d := gridStart; d.Year() <= year; d = d.AddDate(0, 0, 7) {
		weeks++
	}

	var b strings.Builder

	header := []byte(strings.Repeat(" ", 4+weeks*2))
	next := 0

	for w := 0; w < weeks; w++ {
		for i := 0; i < 7; i++ {
			d := gridStart.AddDate(0, 0, w*7+i)
			if d.Year() != year || d.Day() != 1 || w*2 < next {
				continue
			}

			copy(header[4+w*2:], d.Format("Jan"))
			next = w*2 + 4
		}
	}

	b.WriteString(strings.TrimRight(string(header), " ") + "\n")

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		switch wd {
		case time.Monday, time.Wednesday, time.Friday:
			b.WriteString(wd.String()[:3] + " ")
		default:
			b.WriteString("    ")
		}

		for w := 0; w < weeks; w++ {
			day := gridStart.AddDate(0, 0, w*7+int(wd))
			if day.Year() != year {
				b.WriteString("  ")
				continue
			}

			b.WriteString(cell(HeatLevel(mins[timeutil.DayKey(day)])) + " ")
		}

		b.WriteString("\n")
	}

	b.WriteString("\n    Less ")

	for level := range heatColors {
		b.WriteString(cell(level) + " ")
	}

	b.WriteString("More")

	return b.String()
}
