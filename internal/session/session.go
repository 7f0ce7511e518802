// Package session turns finished timer intervals into recorded sessions
package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focuslog/focuslog/internal/apperr"
	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
)

// DefaultTitle is used when a session is saved without a title.
const DefaultTitle = "Focus Session"

var (
	errNothingToRecord = &apperr.Error{
		Message: "session duration must be positive, got %d seconds",
	}

	errInvalidMode = &apperr.Error{
		Message: "cannot record a session in unknown mode %q",
	}
)

// Owner identifies the user a session is recorded for.
type Owner struct {
	ID   string
	Name string
}

// Draft holds the user-supplied details of the session in progress.
type Draft struct {
	Title        string
	Description  string
	PrivateNotes string
	Tasks        []string
}

// Writer persists sessions.
type Writer interface {
	SaveSession(sess *models.Session) error
}

// Build creates a session of secs seconds that ended at end.
func Build(
	owner Owner,
	draft Draft,
	mode engine.Mode,
	secs int,
	end time.Time,
) (*models.Session, error) {
	if secs <= 0 {
		return nil, errNothingToRecord.Fmt(secs)
	}

	if !mode.Valid() {
		return nil, errInvalidMode.Fmt(mode)
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = DefaultTitle
	}

	name := strings.TrimSpace(owner.Name)
	if name == "" {
		name = owner.ID
	}

	return &models.Session{
		ID:              uuid.NewString(),
		UserID:          owner.ID,
		UserName:        name,
		Mode:            string(mode),
		Title:           title,
		Description:     strings.TrimSpace(draft.Description),
		PrivateNotes:    strings.TrimSpace(draft.PrivateNotes),
		Checklist:       Checklist(draft.Tasks),
		StartTime:       end.Add(-time.Duration(secs) * time.Second),
		EndTime:         end,
		DurationSeconds: secs,
	}, nil
}

// Checklist converts task descriptions to checklist items, dropping the
// empty ones.
func Checklist(tasks []string) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(tasks))

	for _, t := range tasks {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		items = append(items, models.ChecklistItem{
			ID:   uuid.NewString(),
			Text: t,
		})
	}

	return items
}

// Recorder saves the intervals finished by the timer.
type Recorder struct {
	store  Writer
	clock  engine.Clock
	logger *slog.Logger
	owner  Owner
	draft  Draft
}

// NewRecorder returns a Recorder writing sessions owned by owner to w.
func NewRecorder(w Writer, owner Owner, draft Draft) *Recorder {
	return &Recorder{
		store:  w,
		owner:  owner,
		draft:  draft,
		clock:  engine.SystemClock,
		logger: slog.Default(),
	}
}

// WithClock overrides the time source used for end times.
func (r *Recorder) WithClock(c engine.Clock) *Recorder {
	r.clock = c
	return r
}

// WithLogger overrides the logger.
func (r *Recorder) WithLogger(l *slog.Logger) *Recorder {
	r.logger = l
	return r
}

// Draft returns the details attached to the next recorded session.
func (r *Recorder) Draft() Draft {
	return r.draft
}

// Record saves a session of secs seconds in mode that ends now.
func (r *Recorder) Record(
	ctx context.Context,
	mode engine.Mode,
	secs int,
) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := Build(r.owner, r.draft, mode, secs, r.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := r.store.SaveSession(sess); err != nil {
		return nil, err
	}

	r.logger.Info(
		"session recorded",
		slog.String("id", sess.ID),
		slog.String("mode", sess.Mode),
		slog.Int("seconds", sess.DurationSeconds),
	)

	return sess, nil
}
