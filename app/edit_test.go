package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/store"
)

func newDB(t *testing.T, sessions ...*models.Session) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "focuslog.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	for _, s := range sessions {
		require.NoError(t, db.SaveSession(s))
	}

	return db
}

func newSession(id, user string, start time.Time) *models.Session {
	return &models.Session{
		ID:              id,
		UserID:          user,
		Title:           "Session " + id,
		StartTime:       start,
		EndTime:         start.Add(25 * time.Minute),
		DurationSeconds: 1500,
	}
}

func TestFindSession(t *testing.T) {
	start := time.Now().Add(-48 * time.Hour)

	db := newDB(t,
		newSession("3f2a9c10-aaaa", "ada", start),
		newSession("3f2b0000-bbbb", "ada", start.Add(time.Hour)),
		newSession("77aa0000-cccc", "bob", start.Add(2*time.Hour)),
	)

	cases := []struct {
		wantErr error
		name    string
		ref     string
		wantID  string
	}{
		{name: "full id", ref: "3f2a9c10-aaaa", wantID: "3f2a9c10-aaaa"},
		{name: "full id of another user", ref: "77aa0000-cccc", wantID: "77aa0000-cccc"},
		{name: "unique prefix", ref: "3f2b", wantID: "3f2b0000-bbbb"},
		{name: "ambiguous prefix", ref: "3f2", wantErr: errAmbiguousID},
		{name: "prefix of another user", ref: "77aa", wantErr: store.ErrSessionNotFound},
		{name: "unknown", ref: "zz", wantErr: store.ErrSessionNotFound},
		{name: "empty", ref: "  ", wantErr: errMissingID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := findSession(db, "ada", tc.ref)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantID, sess.ID)
		})
	}
}

func TestMergeChecklist(t *testing.T) {
	existing := []models.ChecklistItem{
		{ID: "1", Text: "outline", Completed: true},
		{ID: "2", Text: "draft"},
		{ID: "3", Text: "review"},
	}

	got := mergeChecklist(existing, []string{"draft", " ", "outline", "proofread"})

	want := []models.ChecklistItem{
		{ID: "2", Text: "draft"},
		{ID: "1", Text: "outline", Completed: true},
		{Text: "proofread"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mergeChecklist() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeChecklistDuplicates(t *testing.T) {
	existing := []models.ChecklistItem{
		{ID: "1", Text: "read"},
		{ID: "2", Text: "read", Completed: true},
	}

	got := mergeChecklist(existing, []string{"read", "read", "read"})

	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Empty(t, got[2].ID)
}

func TestCompleteItems(t *testing.T) {
	items := []models.ChecklistItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}

	require.NoError(t, completeItems(items, []int{1, 3}))
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)
	assert.True(t, items[2].Completed)

	for _, p := range []int{0, 4} {
		assert.ErrorIs(t, completeItems(items, []int{p}), errChecklistIndex)
	}
}

func TestTaskLines(t *testing.T) {
	assert.Equal(t, "a\nb", taskLines([]models.ChecklistItem{{Text: "a"}, {Text: "b"}}))
	assert.Empty(t, taskLines(nil))
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "b", firstNonEmptyString("", "b", "c"))
	assert.Empty(t, firstNonEmptyString("", ""))
}
