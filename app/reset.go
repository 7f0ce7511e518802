package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
)

// discardTimer removes the saved timer state of profile. It reports false
// when there was nothing to discard.
func discardTimer(db store.DB, profile string) (bool, error) {
	snap, err := db.LoadSnapshot(profile)
	if err != nil || snap == nil {
		return false, err
	}

	return true, db.DeleteSnapshot(profile)
}

// resetAction discards the saved timer so that the next launch starts a
// fresh focus interval. The interval in progress is not recorded.
func resetAction(ctx *cli.Context) error {
	return withStats(ctx, func(cfg *config.Config, db *store.Client, _ *stats.Service) error {
		discarded, err := discardTimer(db, cfg.Profile.UserID)
		if err != nil {
			return err
		}

		if !discarded {
			pterm.Info.Println("there is no saved timer to discard")
			return nil
		}

		pterm.Success.Println("discarded the saved timer")

		return nil
	})
}
