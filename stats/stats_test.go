package stats_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
)

var now = time.Date(2024, time.May, 20, 18, 0, 0, 0, time.UTC)

func newService(t *testing.T, sessions ...*models.Session) (*stats.Service, *store.Client) {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "focuslog.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	for _, s := range sessions {
		require.NoError(t, db.SaveSession(s))
	}

	svc := stats.New(db,
		stats.WithClock(engine.ClockFunc(func() time.Time { return now })),
		stats.WithLocation(time.UTC),
	)

	return svc, db
}

func sess(id, user string, start time.Time, secs int, title string) *models.Session {
	return &models.Session{
		ID:              id,
		UserID:          user,
		UserName:        user,
		Mode:            string(engine.Focus),
		Title:           title,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(secs) * time.Second),
		DurationSeconds: secs,
	}
}

func ids(sessions []*models.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}

	return out
}

func TestActivity(t *testing.T) {
	svc, _ := newService(t,
		sess("a", "ada", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 1500, "Algebra"),
		sess("b", "ada", time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 119, "Review"),
		sess("c", "ada", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), 59, "Short"),
		sess("d", "bob", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 3000, "Other user"),
		sess("e", "ada", time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), 3000, "Last year"),
	)

	days, err := svc.Activity("ada", 2024)
	require.NoError(t, err)

	require.Len(t, days, 2)

	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, 26, days[0].Minutes)
	assert.Equal(t, []string{"a", "b"}, ids(days[0].Sessions))

	assert.Equal(t, "2024-03-04", days[1].Date)
	assert.Equal(t, 0, days[1].Minutes)
	assert.Equal(t, []string{"c"}, ids(days[1].Sessions))
}

func TestActivityUsesLocalDays(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	db, err := store.NewClient(filepath.Join(t.TempDir(), "focuslog.db"))
	require.NoError(t, err)

	defer db.Close()

	// 23:30 UTC on the 1st is already the 2nd two hours east
	require.NoError(t, db.SaveSession(
		sess("a", "ada", time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC), 600, "Late"),
	))

	days, err := stats.New(db, stats.WithLocation(loc)).Activity("ada", 2024)
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, "2024-03-02", days[0].Date)
}

func TestActivityEmpty(t *testing.T) {
	svc, _ := newService(t)

	days, err := svc.Activity("ada", 2024)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestRecent(t *testing.T) {
	svc, _ := newService(t,
		sess("today", "ada", now.Add(-time.Hour), 600, "Today"),
		sess("six", "ada", time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), 600, "Window start"),
		sess("seven", "ada", time.Date(2024, 5, 13, 23, 59, 0, 0, time.UTC), 600, "Too old"),
		sess("yesterday", "ada", now.Add(-24*time.Hour), 600, "Yesterday"),
		sess("bob", "bob", now.Add(-2*time.Hour), 600, "Not ada"),
	)

	got, err := svc.Recent("ada", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"today", "yesterday", "six"}, ids(got))

	got, err = svc.Recent("ada", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, ids(got))

	got, err = svc.Recent("ada", 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLeaderboard(t *testing.T) {
	day := 24 * time.Hour

	svc, _ := newService(t,
		sess("a1", "ada", now.Add(-2*day), 1500, "Calculus"),
		sess("a2", "ada", now.Add(-1*day), 1500, "Topology"),
		sess("b1", "bob", now.Add(-3*day), 3000, "Essay"),
		sess("c1", "cy", now.Add(-time.Hour), 59, "Too short"),
		sess("d1", "dee", now.Add(-8*day), 6000, "Outside window"),
		sess("u10", "user10", now.Add(-time.Hour), 600, "Ten"),
		sess("u9", "user9", now.Add(-2*time.Hour), 600, "Nine"),
	)

	got, err := svc.Leaderboard()
	require.NoError(t, err)

	want := []models.LeaderboardEntry{
		{UserID: "ada", Name: "ada", LastSessionTitle: "Topology", TotalMinutes: 50, SessionsCount: 2},
		{UserID: "bob", Name: "bob", LastSessionTitle: "Essay", TotalMinutes: 50, SessionsCount: 1},
		{UserID: "user9", Name: "user9", LastSessionTitle: "Nine", TotalMinutes: 10, SessionsCount: 1},
		{UserID: "user10", Name: "user10", LastSessionTitle: "Ten", TotalMinutes: 10, SessionsCount: 1},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Leaderboard() mismatch (-want +got):\n%s", diff)
	}
}

func TestLeaderboardSumsSecondsBeforeFlooring(t *testing.T) {
	svc, _ := newService(t,
		sess("a1", "ada", now.Add(-2*time.Hour), 30, "One"),
		sess("a2", "ada", now.Add(-time.Hour), 30, "Two"),
	)

	got, err := svc.Leaderboard()
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].TotalMinutes)
	assert.Equal(t, "Two", got[0].LastSessionTitle)
}

func TestLeaderboardCapsEntries(t *testing.T) {
	var sessions []*models.Session

	for i := 0; i < stats.LeaderboardSize+5; i++ {
		user := fmt.Sprintf("user%d", i)
		sessions = append(sessions, sess(user, user, now.Add(-time.Duration(i+1)*time.Minute), 60+i*60, "x"))
	}

	svc, _ := newService(t, sessions...)

	got, err := svc.Leaderboard()
	require.NoError(t, err)

	require.Len(t, got, stats.LeaderboardSize)
	assert.Equal(t, "user54", got[0].UserID)
}

func TestUpdateSession(t *testing.T) {
	svc, db := newService(t, sess("a", "ada", now.Add(-time.Hour), 1500, "Draft"))

	title := "  Final chapter "
	desc := "proofreading"
	checklist := []models.ChecklistItem{
		{ID: "keep", Text: "intro", Completed: true},
		{Text: " conclusion "},
		{Text: "  "},
	}

	got, err := svc.UpdateSession("ada", "a", models.SessionPatch{
		Title:       &title,
		Description: &desc,
		Checklist:   &checklist,
	})
	require.NoError(t, err)

	assert.Equal(t, "Final chapter", got.Title)
	assert.Equal(t, "proofreading", got.Description)
	require.Len(t, got.Checklist, 2)
	assert.Equal(t, "keep", got.Checklist[0].ID)
	assert.True(t, got.Checklist[0].Completed)
	assert.Equal(t, "conclusion", got.Checklist[1].Text)
	assert.NotEmpty(t, got.Checklist[1].ID)

	stored, err := db.GetSession("a")
	require.NoError(t, err)

	if diff := cmp.Diff(got, stored); diff != "" {
		t.Fatalf("stored session mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateSessionLeavesNilFields(t *testing.T) {
	svc, _ := newService(t, sess("a", "ada", now.Add(-time.Hour), 1500, "Draft"))

	desc := "notes"

	got, err := svc.UpdateSession("ada", "a", models.SessionPatch{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "Draft", got.Title)
	assert.Equal(t, "notes", got.Description)
}

func TestUpdateSessionErrors(t *testing.T) {
	svc, _ := newService(t, sess("a", "ada", now.Add(-time.Hour), 1500, "Draft"))

	title := "Mine now"

	_, err := svc.UpdateSession("bob", "a", models.SessionPatch{Title: &title})
	assert.ErrorIs(t, err, stats.ErrForbidden)

	_, err = svc.UpdateSession("ada", "missing", models.SessionPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	empty := " "

	_, err = svc.UpdateSession("ada", "a", models.SessionPatch{Title: &empty})
	assert.Error(t, err)
}

func TestDeleteSession(t *testing.T) {
	svc, db := newService(t, sess("a", "ada", now.Add(-time.Hour), 1500, "Draft"))

	assert.ErrorIs(t, svc.DeleteSession("bob", "a"), stats.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteSession("ada", "missing"), store.ErrSessionNotFound)

	require.NoError(t, svc.DeleteSession("ada", "a"))

	_, err := db.GetSession("a")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestPrintSessions(t *testing.T) {
	var buf bytes.Buffer

	s := sess("0123456789abcdef", "ada", now.Add(-time.Hour), 1500, "Algebra")
	s.Checklist = []models.ChecklistItem{{Text: "a", Completed: true}, {Text: "b"}}

	require.NoError(t, stats.PrintSessions(&buf, []*models.Session{s}, "15:04"))

	out := buf.String()
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "25:00")
	assert.Contains(t, out, "1/2")
}

func TestPrintLeaderboard(t *testing.T) {
	var buf bytes.Buffer

	err := stats.PrintLeaderboard(&buf, []models.LeaderboardEntry{
		{UserID: "ada", Name: "Ada", TotalMinutes: 65, SessionsCount: 3, LastSessionTitle: "Topology"},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Ada")
	assert.Contains(t, buf.String(), "1h 05m")
	assert.Contains(t, buf.String(), "Topology")
}
