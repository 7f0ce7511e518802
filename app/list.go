package app

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/apperr"
	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/timeutil"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
)

var errSinceAndPeriod = &apperr.Error{
	Message: "use either --since or --period, not both",
}

// reportedUser is the user a report is about.
func reportedUser(ctx *cli.Context, cfg *config.Config) string {
	if ctx.Bool("all") {
		return ""
	}

	return firstNonEmptyString(ctx.String("user"), cfg.Profile.UserID)
}

// listWindow resolves the --since and --period flags to a time range. ok is
// false when neither flag is set.
func listWindow(since, period string, now time.Time) (start, end time.Time, ok bool, err error) {
	if since != "" && period != "" {
		return start, end, false, errSinceAndPeriod
	}

	switch {
	case since != "":
		start, err = timeutil.FromStr(since, now)
		return start, now, err == nil, err
	case period != "":
		start, end, err = timeutil.PeriodBounds(timeutil.Period(period), now)
		return start, end, err == nil, err
	}

	return start, end, false, nil
}

// listAction prints a table of the sessions started within a time period.
func listAction(ctx *cli.Context) error {
	return withStats(ctx, func(cfg *config.Config, _ *store.Client, svc *stats.Service) error {
		user := reportedUser(ctx, cfg)

		start, end, ok, err := listWindow(
			ctx.String("since"),
			ctx.String("period"),
			time.Now(),
		)
		if err != nil {
			return err
		}

		var sessions []*models.Session

		if ok {
			sessions, err = svc.Between(user, start, end, true)
		} else {
			sessions, err = svc.Recent(user, ctx.Int("days"))
		}

		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(sessions)
		}

		return stats.PrintSessions(config.Stdout, sessions, cfg.TimeFormat())
	})
}

// activityAction prints the yearly heatmap of a user.
func activityAction(ctx *cli.Context) error {
	return withStats(ctx, func(cfg *config.Config, _ *store.Client, svc *stats.Service) error {
		year := ctx.Int("year")
		if year == 0 {
			year = time.Now().Year()
		}

		days, err := svc.Activity(reportedUser(ctx, cfg), year)
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(days)
		}

		return stats.PrintActivity(config.Stdout, days, year, time.Local)
	})
}

// leaderboardAction prints the weekly leaderboard.
func leaderboardAction(ctx *cli.Context) error {
	return withStats(ctx, func(_ *config.Config, _ *store.Client, svc *stats.Service) error {
		entries, err := svc.Leaderboard()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(entries)
		}

		return stats.PrintLeaderboard(config.Stdout, entries)
	})
}
