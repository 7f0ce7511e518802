package store

import (
	"time"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveSession stores a session. The session is created if it doesn't
	// exist already, or overwritten if it does.
	SaveSession(sess *models.Session) error
	// GetSession returns the session with the given ID
	GetSession(id string) (*models.Session, error)
	// GetSessions returns the sessions started within the time bounds. An
	// empty userID matches every user.
	GetSessions(
		startTime, endTime time.Time,
		userID string,
	) ([]*models.Session, error)
	// DeleteSession deletes a saved session
	DeleteSession(id string) error
	// LoadSnapshot returns the saved timer state of a profile, or nil
	LoadSnapshot(profile string) (*engine.Snapshot, error)
	// SaveSnapshot stores the timer state of a profile
	SaveSnapshot(profile string, snap *engine.Snapshot) error
	// DeleteSnapshot discards the timer state of a profile
	DeleteSnapshot(profile string) error
	// Close ends the database connection
	Close() error
}
