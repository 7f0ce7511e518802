package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/timeutil"
	"github.com/focuslog/focuslog/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	dateFormat    = "Jan 02, 2006"
	shortIDLength = 8
)

// ShortID abbreviates a session ID for display.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}

	return id[:shortIDLength]
}

func checklistSummary(items []models.ChecklistItem) string {
	if len(items) == 0 {
		return ""
	}

	done := 0

	for _, item := range items {
		if item.Completed {
			done++
		}
	}

	return fmt.Sprintf("%d/%d", done, len(items))
}

// PrintSessions prints out a table of sessions.
func PrintSessions(w io.Writer, sessions []*models.Session, timeFormat string) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	data := [][]string{
		{"#", "ID", "DATE", "TIME", "DURATION", "MODE", "TITLE", "TASKS"},
	}

	for i, sess := range sessions {
		start := sess.StartTime.Local()
		end := sess.EndTime.Local()

		data = append(data, []string{
			strconv.Itoa(i + 1),
			ShortID(sess.ID),
			start.Format(dateFormat),
			start.Format(timeFormat) + " - " + end.Format(timeFormat),
			ui.Green(timeutil.Clock(sess.DurationSeconds)),
			engine.Mode(sess.Mode).Label(),
			sess.Title,
			checklistSummary(sess.Checklist),
		})
	}

	return ui.PrintTable(data, w)
}

// PrintLeaderboard prints the ranked leaderboard entries.
func PrintLeaderboard(w io.Writer, entries []models.LeaderboardEntry) error {
	if len(entries) == 0 {
		pterm.Info.Println("Nobody has logged a session this week")
		return nil
	}

	data := [][]string{
		{"RANK", "NAME", "TIME", "SESSIONS", "LAST SESSION"},
	}

	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Name,
			ui.Green(timeutil.Humanize(e.TotalMinutes)),
			strconv.Itoa(e.SessionsCount),
			e.LastSessionTitle,
		})
	}

	return ui.PrintTable(data, w)
}

// PrintActivity prints the activity heatmap of a year with its totals.
func PrintActivity(
	w io.Writer,
	days []models.DayActivity,
	year int,
	loc *time.Location,
) error {
	var mins, sessions int

	for _, d := range days {
		mins += d.Minutes
		sessions += len(d.Sessions)
	}

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Activity in %d", year)

	_, err := fmt.Fprintf(
		w,
		"%s\n%s\n\nTime logged: %s\nSessions: %s\nActive days: %s\n",
		header,
		ui.Heatmap(days, year, loc),
		ui.Green(timeutil.Humanize(mins)),
		ui.Green(sessions),
		ui.Green(len(days)),
	)

	return err
}
