package stats

import (
	"strings"

	"github.com/focuslog/focuslog/internal/apperr"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/session"
)

var (
	// ErrForbidden is returned when a user changes a session they don't own.
	ErrForbidden = &apperr.Error{
		Message: "session %q belongs to another user",
	}

	// ErrEmptyTitle is returned when an update clears the session title.
	ErrEmptyTitle = &apperr.Error{
		Message: "session title cannot be empty",
	}
)

// UpdateSession applies patch to the session with the given ID on behalf of
// userID and returns the updated session.
func (s *Service) UpdateSession(
	userID, id string,
	patch models.SessionPatch,
) (*models.Session, error) {
	sess, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}

		sess.Title = title
	}

	if patch.Description != nil {
		sess.Description = strings.TrimSpace(*patch.Description)
	}

	if patch.Checklist != nil {
		sess.Checklist = normalizeChecklist(*patch.Checklist)
	}

	if err := s.db.SaveSession(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// owned loads a session and checks that userID owns it.
func (s *Service) owned(userID, id string) (*models.Session, error) {
	sess, err := s.db.GetSession(id)
	if err != nil {
		return nil, err
	}

	if sess.UserID != userID {
		return nil, ErrForbidden.Fmt(id)
	}

	return sess, nil
}

// normalizeChecklist trims item text, drops empty items and assigns IDs to
// new ones.
func normalizeChecklist(items []models.ChecklistItem) []models.ChecklistItem {
	out := make([]models.ChecklistItem, 0, len(items))

	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}

		if item.ID == "" {
			item.ID = session.Checklist([]string{text})[0].ID
		}

		item.Text = text
		out = append(out, item)
	}

	return out
}
