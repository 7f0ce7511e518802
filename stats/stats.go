// Package stats reports focus session activity
package stats

import (
	"slices"
	"time"

	"github.com/maruel/natural"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/timeutil"
	"github.com/focuslog/focuslog/store"
)

const (
	// LeaderboardWindow is how far back the leaderboard looks.
	LeaderboardWindow = 7 * 24 * time.Hour
	// LeaderboardSize caps the number of leaderboard entries.
	LeaderboardSize = 50
	// DefaultRecentDays is the default window of Recent.
	DefaultRecentDays = 7
)

// Service computes activity reports from the session store.
type Service struct {
	db    store.DB
	clock engine.Clock
	loc   *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used to resolve relative windows.
func WithClock(c engine.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLocation sets the time zone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.loc = loc
	}
}

// New returns a Service reading from db.
func New(db store.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		clock: engine.SystemClock,
		loc:   time.Local,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Activity returns the sessions a user started in year grouped by day, in
// chronological order. Each day counts the whole minutes of its sessions.
func (s *Service) Activity(userID string, year int) ([]models.DayActivity, error) {
	start, end := timeutil.YearBounds(year, s.loc)

	sessions, err := s.db.GetSessions(start, end, userID)
	if err != nil {
		return nil, err
	}

	var days []models.DayActivity

	index := make(map[string]int)

	for _, sess := range filterSessions(sessions) {
		date := timeutil.DayKey(sess.StartTime.In(s.loc))

		i, ok := index[date]
		if !ok {
			i = len(days)
			index[date] = i

			days = append(days, models.DayActivity{
				Date:     date,
				Sessions: []*models.Session{},
			})
		}

		days[i].Minutes += sess.DurationSeconds / 60
		days[i].Sessions = append(days[i].Sessions, sess)
	}

	return days, nil
}

// Recent returns the sessions a user started in the last days calendar days
// (today included), most recent first.
func (s *Service) Recent(userID string, days int) ([]*models.Session, error) {
	if days < 1 {
		days = DefaultRecentDays
	}

	now := s.now()
	start := timeutil.RoundToStart(now.AddDate(0, 0, -days+1))
	end := timeutil.RoundToEnd(now)

	return s.Between(userID, start, end, true)
}

// Between returns the sessions a user started between start and end. An
// empty userID matches every user.
func (s *Service) Between(
	userID string,
	start, end time.Time,
	newestFirst bool,
) ([]*models.Session, error) {
	sessions, err := s.db.GetSessions(start, end, userID)
	if err != nil {
		return nil, err
	}

	sessions = filterSessions(sessions)

	if newestFirst {
		slices.Reverse(sessions)
	}

	return sessions, nil
}

// Leaderboard ranks users by the minutes they logged over the last
// LeaderboardWindow. Users without a whole minute are left out.
func (s *Service) Leaderboard() ([]models.LeaderboardEntry, error) {
	now := s.now()

	sessions, err := s.db.GetSessions(now.Add(-LeaderboardWindow), now, "")
	if err != nil {
		return nil, err
	}

	type tally struct {
		last    *models.Session
		seconds int
		count   int
	}

	var order []string

	users := make(map[string]*tally)

	for _, sess := range filterSessions(sessions) {
		t, ok := users[sess.UserID]
		if !ok {
			t = &tally{}
			users[sess.UserID] = t
			order = append(order, sess.UserID)
		}

		t.seconds += sess.DurationSeconds
		t.count++

		if t.last == nil || !sess.StartTime.Before(t.last.StartTime) {
			t.last = sess
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(order))

	for _, id := range order {
		t := users[id]

		mins := t.seconds / 60
		if mins <= 0 {
			continue
		}

		name := t.last.UserName
		if name == "" {
			name = id
		}

		entries = append(entries, models.LeaderboardEntry{
			UserID:           id,
			Name:             name,
			LastSessionTitle: t.last.Title,
			TotalMinutes:     mins,
			SessionsCount:    t.count,
		})
	}

	slices.SortStableFunc(entries, func(a, b models.LeaderboardEntry) int {
		if a.TotalMinutes != b.TotalMinutes {
			return b.TotalMinutes - a.TotalMinutes
		}

		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}

		return 0
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}

	return entries, nil
}

// filterSessions ensures that sessions with an invalid end date are ignored.
func filterSessions(sessions []*models.Session) []*models.Session {
	filtered := sessions[:0]

	for _, sess := range sessions {
		if sess.EndTime.IsZero() || sess.EndTime.Before(sess.StartTime) {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}
