package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the focuslog app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "focuslog",
		Usage: `
		focuslog is a Pomodoro timer for the command-line that keeps a log of
		your focus sessions, renders your yearly activity and ranks everyone
		sharing the log on a weekly leaderboard.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
			{
				Name:   "list",
				Usage:  "List your recent sessions. Defaults to the last 7 days",
				Flags:  []cli.Flag{sinceFlag, periodFlag, daysFlag, userFlag, allUsersFlag, jsonFlag},
				Action: listAction,
			},
			{
				Name:   "activity",
				Usage:  "Show a heatmap of the minutes focused each day of a year",
				Flags:  []cli.Flag{yearFlag, userFlag, jsonFlag},
				Action: activityAction,
			},
			{
				Name:   "leaderboard",
				Usage:  "Rank users by the minutes focused over the last 7 days",
				Flags:  []cli.Flag{jsonFlag},
				Action: leaderboardAction,
			},
			{
				Name:      "edit",
				Usage:     "Edit the title, description or checklist of a session",
				ArgsUsage: "<session-id>",
				Flags: []cli.Flag{
					editTitleFlag,
					editDescriptionFlag,
					editTaskFlag,
					completeFlag,
				},
				Action: editAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a session permanently",
				ArgsUsage: "<session-id>",
				Flags:     []cli.Flag{yesFlag},
				Action:    deleteAction,
			},
			{
				Name:   "reset",
				Usage:  "Discard the saved timer so the next launch starts afresh",
				Action: resetAction,
			},
			{
				Name:   "serve",
				Usage:  "Serve the session log and the leaderboard over HTTP",
				Flags:  []cli.Flag{addrFlag},
				Action: serveAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			modeFlag,
			customFlag,
			titleFlag,
			descriptionFlag,
			taskFlag,
			sessionCmdFlag,
			disableNotificationFlag,
			muteFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
