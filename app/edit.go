package app

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/apperr"
	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
)

var (
	errMissingID = &apperr.Error{
		Message: "a session ID is required (see 'focuslog list')",
	}

	errAmbiguousID = &apperr.Error{
		Message: "%q matches more than one session, use a longer prefix",
	}

	errChecklistIndex = &apperr.Error{
		Message: "checklist item %d does not exist",
	}
)

// findSession resolves a full session ID or a unique prefix of one among the
// sessions of userID.
func findSession(db store.DB, userID, ref string) (*models.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errMissingID
	}

	sess, err := db.GetSession(ref)
	if err == nil {
		return sess, nil
	}

	if !errors.Is(err, store.ErrSessionNotFound) {
		return nil, err
	}

	all, err := db.GetSessions(time.Time{}, time.Now().AddDate(1, 0, 0), userID)
	if err != nil {
		return nil, err
	}

	var matches []*models.Session

	for _, s := range all {
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, store.ErrSessionNotFound.Fmt(ref)
	case 1:
		return matches[0], nil
	default:
		return nil, errAmbiguousID.Fmt(ref)
	}
}

// mergeChecklist rebuilds a checklist from task lines, keeping the ID and
// completion of items whose text is unchanged.
func mergeChecklist(existing []models.ChecklistItem, lines []string) []models.ChecklistItem {
	byText := make(map[string][]models.ChecklistItem)
	for _, item := range existing {
		byText[item.Text] = append(byText[item.Text], item)
	}

	out := make([]models.ChecklistItem, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if prev := byText[line]; len(prev) > 0 {
			out = append(out, prev[0])
			byText[line] = prev[1:]

			continue
		}

		out = append(out, models.ChecklistItem{Text: line})
	}

	return out
}

// completeItems marks the checklist items at the 1-based positions as done.
func completeItems(items []models.ChecklistItem, positions []int) error {
	for _, p := range positions {
		if p < 1 || p > len(items) {
			return errChecklistIndex.Fmt(p)
		}

		items[p-1].Completed = true
	}

	return nil
}

func taskLines(items []models.ChecklistItem) string {
	lines := make([]string, len(items))
	for i := range items {
		lines[i] = items[i].Text
	}

	return strings.Join(lines, "\n")
}

// patchFromFlags builds an update from the edit command's flags. It returns
// false when no editing flag was given.
func patchFromFlags(ctx *cli.Context, sess *models.Session) (models.SessionPatch, bool, error) {
	var (
		patch models.SessionPatch
		set   bool
	)

	if ctx.IsSet("title") {
		title := ctx.String("title")
		patch.Title = &title
		set = true
	}

	if ctx.IsSet("description") {
		desc := ctx.String("description")
		patch.Description = &desc
		set = true
	}

	checklist := sess.Checklist

	if ctx.IsSet("task") {
		checklist = mergeChecklist(sess.Checklist, ctx.StringSlice("task"))
		set = true
	}

	if ctx.IsSet("complete") {
		checklist = append([]models.ChecklistItem(nil), checklist...)

		if err := completeItems(checklist, ctx.IntSlice("complete")); err != nil {
			return patch, false, err
		}

		set = true
	}

	if ctx.IsSet("task") || ctx.IsSet("complete") {
		patch.Checklist = &checklist
	}

	return patch, set, nil
}

// patchFromForm asks for the new values interactively.
func patchFromForm(sess *models.Session) (models.SessionPatch, error) {
	title := sess.Title
	desc := sess.Description
	tasks := taskLines(sess.Checklist)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return stats.ErrEmptyTitle
					}

					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&desc),
			huh.NewText().
				Title("Checklist").
				Description("One task per line").
				Value(&tasks),
		),
	)

	if err := form.Run(); err != nil {
		return models.SessionPatch{}, err
	}

	checklist := mergeChecklist(sess.Checklist, strings.Split(tasks, "\n"))

	return models.SessionPatch{
		Title:       &title,
		Description: &desc,
		Checklist:   &checklist,
	}, nil
}

// editAction updates a session from flags, or through a form when none is
// given.
func editAction(ctx *cli.Context) error {
	return withStats(ctx, func(cfg *config.Config, db *store.Client, svc *stats.Service) error {
		sess, err := findSession(db, cfg.Profile.UserID, ctx.Args().First())
		if err != nil {
			return err
		}

		patch, ok, err := patchFromFlags(ctx, sess)
		if err != nil {
			return err
		}

		if !ok {
			patch, err = patchFromForm(sess)
			if err != nil {
				return err
			}
		}

		updated, err := svc.UpdateSession(cfg.Profile.UserID, sess.ID, patch)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("updated session %s", stats.ShortID(updated.ID))

		return stats.PrintSessions(config.Stdout, []*models.Session{updated}, cfg.TimeFormat())
	})
}
