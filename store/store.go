// Package store connects to the data store and manages timers and sessions
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/focuslog/focuslog/internal/apperr"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/timeutil"
)

const (
	sessionBucket   = "sessions"
	sessionIDBucket = "session_ids"
	timerBucket     = "timers"
)

var (
	// ErrFocusRunning is returned when another process holds the database.
	ErrFocusRunning = &apperr.Error{
		Message: "is focuslog already running? Only one instance can be active at a time",
	}

	// ErrSessionNotFound is returned when no session has the requested ID.
	ErrSessionNotFound = &apperr.Error{
		Message: "session %q not found",
	}

	errEmptySessionID = &apperr.Error{
		Message: "session ID cannot be empty",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// sessionKey orders sessions by start time. The ID suffix keeps sessions
// that start in the same instant apart.
func sessionKey(sess *models.Session) []byte {
	return append(timeutil.ToKey(sess.StartTime), []byte(sess.ID)...)
}

func (c *Client) SaveSession(sess *models.Session) error {
	if sess.ID == "" {
		return errEmptySessionID
	}

	key := sessionKey(sess)

	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		sessions := tx.Bucket([]byte(sessionBucket))
		ids := tx.Bucket([]byte(sessionIDBucket))

		// the start time may have moved since the last save
		if old := ids.Get([]byte(sess.ID)); old != nil && !bytes.Equal(old, key) {
			if err := sessions.Delete(old); err != nil {
				return err
			}
		}

		if err := sessions.Put(key, value); err != nil {
			return err
		}

		return ids.Put([]byte(sess.ID), key)
	})
}

func (c *Client) GetSession(id string) (*models.Session, error) {
	var sess models.Session

	err := c.View(func(tx *bolt.Tx) error {
		key := tx.Bucket([]byte(sessionIDBucket)).Get([]byte(id))
		if key == nil {
			return ErrSessionNotFound.Fmt(id)
		}

		sessBytes := tx.Bucket([]byte(sessionBucket)).Get(key)
		if len(sessBytes) == 0 {
			return ErrSessionNotFound.Fmt(id)
		}

		return json.Unmarshal(sessBytes, &sess)
	})
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

func (c *Client) DeleteSession(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket([]byte(sessionIDBucket))

		key := ids.Get([]byte(id))
		if key == nil {
			return ErrSessionNotFound.Fmt(id)
		}

		if err := tx.Bucket([]byte(sessionBucket)).Delete(key); err != nil {
			return err
		}

		return ids.Delete([]byte(id))
	})
}

func (c *Client) GetSessions(
	startTime, endTime time.Time,
	userID string,
) ([]*models.Session, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k[:len(max)], max) <= 0; k, v = cur.Next() {
			b = append(b, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s := make([]*models.Session, 0, len(b))

	for _, v := range b {
		sess := &models.Session{}

		err = json.Unmarshal(v, sess)
		if err != nil {
			return nil, err
		}

		if userID != "" && sess.UserID != userID {
			continue
		}

		s = append(s, sess)
	}

	return s, nil
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrFocusRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{sessionBucket, sessionIDBucket, timerBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return reindex(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
