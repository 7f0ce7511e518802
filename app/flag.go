package app

import (
	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/stats"
)

var (
	modeFlag = &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "Start in this mode: focus, short_break, long_break or custom",
	}

	customFlag = &cli.StringFlag{
		Name:    "custom",
		Aliases: []string{"c"},
		Usage:   "Length of the custom timer (e.g. 45m or 90). Implies --mode custom",
	}

	titleFlag = &cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "Title of the session being recorded",
	}

	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "Description of the session being recorded",
	}

	taskFlag = &cli.StringSliceFlag{
		Name:  "task",
		Usage: "Add a checklist item to the session. Repeat for more than one task",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each recorded session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	muteFlag = &cli.BoolFlag{
		Name:  "mute",
		Usage: "Do not play a chime when a session is completed",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "List sessions started since this date (e.g. 'last monday' or '3 days ago')",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "List sessions from a named period: today, yesterday, 7days, 14days, 30days, 90days, 365days or all-time",
	}

	daysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "List sessions from this many days including today",
		Value: stats.DefaultRecentDays,
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Report on this user instead of the configured profile",
	}

	allUsersFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Include the sessions of every user",
	}

	yearFlag = &cli.IntFlag{
		Name:    "year",
		Aliases: []string{"y"},
		Usage:   "Year to report on (defaults to the current year)",
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Address the API server listens on (defaults to server.addr in the config file)",
	}

	yesFlag = &cli.BoolFlag{
		Name:  "yes",
		Usage: "Skip the confirmation prompt",
	}

	completeFlag = &cli.IntSliceFlag{
		Name:  "complete",
		Usage: "Mark the checklist item at this position (starting from 1) as completed",
	}
)

var (
	editTitleFlag = &cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "New title of the session",
	}

	editDescriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "New description of the session",
	}

	editTaskFlag = &cli.StringSliceFlag{
		Name:  "task",
		Usage: "Replace the checklist. Repeat for more than one task; unchanged tasks keep their state",
	}
)
