package app

import (
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
)

// deleteAction deletes a session. It requests confirmation before
// proceeding unless --yes is set.
func deleteAction(ctx *cli.Context) error {
	return withStats(ctx, func(cfg *config.Config, db *store.Client, svc *stats.Service) error {
		sess, err := findSession(db, cfg.Profile.UserID, ctx.Args().First())
		if err != nil {
			return err
		}

		err = stats.PrintSessions(config.Stdout, []*models.Session{sess}, cfg.TimeFormat())
		if err != nil {
			return err
		}

		if !ctx.Bool("yes") {
			var confirmed bool

			err = huh.NewConfirm().
				Title("The session above will be deleted permanently. Proceed?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil {
				return err
			}

			if !confirmed {
				pterm.Info.Println("nothing was deleted")
				return nil
			}
		}

		if err := svc.DeleteSession(cfg.Profile.UserID, sess.ID); err != nil {
			return err
		}

		pterm.Success.Printfln("deleted session %s", stats.ShortID(sess.ID))

		return nil
	})
}
