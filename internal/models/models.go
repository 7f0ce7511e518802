// Package models defines the records shared by the store, the activity
// reports and the HTTP API
package models

import "time"

// ChecklistItem is a single task attached to a session.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Session is a completed (or manually stopped) focus interval.
type Session struct {
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	Mode            string          `json:"mode"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	PrivateNotes    string          `json:"private_notes,omitempty"`
	Checklist       []ChecklistItem `json:"checklist"`
	DurationSeconds int             `json:"duration_seconds"`
}

// Duration returns the credited length of the session.
func (s *Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// SessionPatch holds the editable fields of a session. Nil fields are left
// unchanged.
type SessionPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Checklist   *[]ChecklistItem `json:"checklist"`
}

// DayActivity aggregates the sessions started on one calendar day.
type DayActivity struct {
	Date     string     `json:"date"` // YYYY-MM-DD
	Sessions []*Session `json:"sessions"`
	Minutes  int        `json:"count"`
}

// LeaderboardEntry is one user's standing over the leaderboard window.
type LeaderboardEntry struct {
	UserID           string `json:"id"`
	Name             string `json:"name"`
	LastSessionTitle string `json:"last_session_title,omitempty"`
	TotalMinutes     int    `json:"total_minutes"`
	SessionsCount    int    `json:"sessions_count"`
}
