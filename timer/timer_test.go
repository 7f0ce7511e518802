package timer

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
)

type recordCall struct {
	mode engine.Mode
	secs int
}

type fakeRecorder struct {
	err   error
	calls []recordCall
	mu    sync.Mutex
}

func (f *fakeRecorder) Record(_ context.Context, mode engine.Mode, secs int) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, recordCall{mode: mode, secs: secs})

	if f.err != nil {
		return nil, f.err
	}

	return &models.Session{
		ID:              "id",
		Title:           "Focus Session",
		Mode:            string(mode),
		DurationSeconds: secs,
	}, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func testConfig() *config.Config {
	return &config.Config{
		Focus:      config.SessionConfig{Message: "Focus on your task", Color: "#B0DB43", Duration: 25 * time.Minute},
		ShortBreak: config.SessionConfig{Message: "Take a breather", Color: "#12EAEA", Duration: 5 * time.Minute},
		LongBreak:  config.SessionConfig{Message: "Take a long break", Color: "#C492B1", Duration: 15 * time.Minute},
		Custom: config.CustomConfig{
			Message:  "Deep work",
			Color:    "#F4A259",
			Duration: time.Hour,
			Min:      10 * time.Minute,
			Max:      180 * time.Minute,
			Step:     5 * time.Minute,
		},
		Timer: config.TimerConfig{
			TickInterval:     time.Millisecond,
			AnomalyThreshold: 5 * time.Second,
		},
	}
}

type harness struct {
	m     *Model
	rec   *fakeRecorder
	clock *fakeClock
	store *engine.MemoryStore
}

func newHarness(t *testing.T, cfg *config.Config, store *engine.MemoryStore) *harness {
	t.Helper()

	if store == nil {
		store = &engine.MemoryStore{}
	}

	h := &harness{
		rec:   &fakeRecorder{},
		clock: &fakeClock{now: time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)},
		store: store,
	}

	h.m = New(context.Background(), cfg, Options{
		Store:    store,
		Clock:    h.clock,
		Recorder: h.rec,
	})

	return h
}

// run executes cmd and returns the messages it produced, skipping ticks.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}

		return out
	case tickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// send delivers msg and feeds the resulting messages back into the model.
func (h *harness) send(msg tea.Msg) []tea.Msg {
	_, cmd := h.m.Update(msg)

	var out []tea.Msg

	for _, next := range run(cmd) {
		out = append(out, next)

		if _, ok := next.(tea.QuitMsg); ok {
			continue
		}

		out = append(out, h.send(next)...)
	}

	return out
}

func (h *harness) press(keys string) []tea.Msg {
	if keys == " " {
		return h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}

	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

// advance moves the clock forward in ticks no larger than the anomaly
// threshold.
func (h *harness) advance(d time.Duration) {
	step := 5 * time.Second

	for d > 0 {
		s := min(step, d)
		h.clock.now = h.clock.now.Add(s)
		d -= s

		h.send(tickMsg(h.clock.now))
	}
}

func TestCompletedIntervalIsRecorded(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	run(h.m.Init())

	h.press(" ")
	assert.True(t, h.m.Engine().State().Running)

	h.advance(25 * time.Minute)

	st := h.m.Engine().State()
	assert.False(t, st.Running)
	assert.Equal(t, 0, st.RemainingSeconds)

	require.Equal(t, []recordCall{{mode: engine.Focus, secs: 1500}}, h.rec.calls)
	assert.Contains(t, h.m.flash, "Saved")
	assert.False(t, h.m.flashErr)
}

func TestStopAndSaveRecordsElapsed(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press(" ")
	h.advance(10 * time.Minute)
	h.press("s")

	require.Equal(t, []recordCall{{mode: engine.Focus, secs: 600}}, h.rec.calls)

	st := h.m.Engine().State()
	assert.Equal(t, engine.Idle, st.Status())
	assert.Equal(t, 1500, st.RemainingSeconds)
}

func TestStopAndSaveWithNothingElapsed(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press("s")

	assert.Empty(t, h.rec.calls)
	assert.Equal(t, "Nothing to save yet", h.m.flash)
}

func TestRecordFailureIsShown(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	h.rec.err = errors.New("database is closed")

	h.press(" ")
	h.advance(time.Minute)
	h.press("s")

	assert.True(t, h.m.flashErr)
	assert.Contains(t, h.m.flash, "database is closed")
}

func TestSwitchModeRefusedWhileRunning(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press(" ")
	h.press("2")

	assert.Equal(t, engine.Focus, h.m.Engine().State().Mode)
	assert.True(t, h.m.flashErr)

	h.press(" ")
	h.press("2")

	st := h.m.Engine().State()
	assert.Equal(t, engine.ShortBreak, st.Mode)
	assert.Equal(t, 300, st.RemainingSeconds)

	h.press("3")
	assert.Equal(t, engine.LongBreak, h.m.Engine().State().Mode)

	h.press("1")
	assert.Equal(t, engine.Focus, h.m.Engine().State().Mode)
}

func TestAdjustCustom(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press("+")
	assert.Equal(t, engine.Focus, h.m.Engine().State().Mode)
	assert.True(t, h.m.flashErr)

	h.press("4")
	assert.Equal(t, 3600, h.m.Engine().State().TotalSeconds)

	h.press("+")
	assert.Equal(t, 3900, h.m.Engine().State().TotalSeconds)

	h.press("-")
	h.press("-")
	assert.Equal(t, 3300, h.m.Engine().State().TotalSeconds)

	for i := 0; i < 20; i++ {
		h.press("-")
	}

	st := h.m.Engine().State()
	assert.Equal(t, 600, st.TotalSeconds)
	assert.Equal(t, 600, st.CustomSeconds)

	h.press(" ")
	h.press("+")
	assert.Equal(t, 600, h.m.Engine().State().TotalSeconds)
}

func TestResetKey(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press(" ")
	h.advance(time.Minute)
	h.press("r")

	st := h.m.Engine().State()
	assert.Equal(t, engine.Idle, st.Status())
	assert.Equal(t, 1500, st.RemainingSeconds)
}

func TestCommandLineMode(t *testing.T) {
	cfg := testConfig()
	cfg.CLI.Mode = engine.Custom
	cfg.CLI.CustomDuration = 45 * time.Minute

	h := newHarness(t, cfg, nil)

	st := h.m.Engine().State()
	assert.Equal(t, engine.Custom, st.Mode)
	assert.Equal(t, 2700, st.TotalSeconds)
}

func TestCommandLineModeIgnoredWhenResuming(t *testing.T) {
	store := &engine.MemoryStore{}

	h := newHarness(t, testConfig(), store)
	h.press(" ")
	h.advance(time.Minute)

	cfg := testConfig()
	cfg.CLI.Mode = engine.LongBreak

	resumed := newHarness(t, cfg, store)

	st := resumed.m.Engine().State()
	assert.Equal(t, engine.Focus, st.Mode)
	assert.True(t, st.Running)
}

func TestExpiredWhileClosedIsRecordedOnInit(t *testing.T) {
	store := &engine.MemoryStore{}

	deadline := time.Date(2024, time.May, 20, 8, 0, 0, 0, time.UTC).UnixMilli()
	require.NoError(t, store.Save(&engine.Snapshot{
		Deadline:         &deadline,
		Mode:             engine.ShortBreak,
		TotalSeconds:     300,
		RemainingSeconds: 120,
		Running:          true,
	}))

	h := newHarness(t, testConfig(), store)

	for _, msg := range run(h.m.Init()) {
		h.send(msg)
	}

	require.Equal(t, []recordCall{{mode: engine.ShortBreak, secs: 300}}, h.rec.calls)
	assert.Equal(t, engine.Completed, h.m.Engine().State().Status())
}

func TestQuit(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	msgs := h.press("q")

	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}

func TestQuitSavesPendingInterval(t *testing.T) {
	store := &engine.MemoryStore{}

	deadline := time.Date(2024, time.May, 20, 8, 0, 0, 0, time.UTC).UnixMilli()
	require.NoError(t, store.Save(&engine.Snapshot{
		Deadline:         &deadline,
		Mode:             engine.Focus,
		TotalSeconds:     1500,
		RemainingSeconds: 60,
		Running:          true,
	}))

	// quit before Init has drained the interval that finished while closed
	h := newHarness(t, testConfig(), store)

	msgs := h.press("q")

	require.Len(t, msgs, 2)
	assert.IsType(t, recordedMsg{}, msgs[0])
	assert.IsType(t, tea.QuitMsg{}, msgs[1])
	assert.Equal(t, []recordCall{{mode: engine.Focus, secs: 1500}}, h.rec.calls)
}

func TestQuitWaitsForInflightSave(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press(" ")
	h.advance(10 * time.Minute)

	// hold the save command instead of running it
	_, save := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, save)

	assert.Empty(t, h.press("q"))
	assert.Contains(t, h.m.flash, "Saving session")

	var msgs []tea.Msg
	for _, msg := range run(save) {
		msgs = append(msgs, h.send(msg)...)
	}

	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
	assert.Equal(t, []recordCall{{mode: engine.Focus, secs: 600}}, h.rec.calls)
}

func TestQuitTwiceExitsWithoutWaiting(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.press(" ")
	h.advance(time.Minute)

	_, save := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, save)

	assert.Empty(t, h.press("q"))

	msgs := h.press("q")
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
	assert.Empty(t, h.rec.calls)
}

func TestView(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	h.m.title = "Thesis"

	view := h.m.View()
	assert.Contains(t, view, "[Focus]")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "[Ready]")
	assert.Contains(t, view, "Thesis")

	h.press(" ")
	h.advance(90 * time.Second)

	view = h.m.View()
	assert.Contains(t, view, "23:30")
	assert.Contains(t, view, "until")

	h.press(" ")
	assert.Contains(t, h.m.View(), "[Paused]")
}

func TestStatusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	clock := &fakeClock{now: time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)}

	m := New(context.Background(), testConfig(), Options{
		Clock:      clock,
		Title:      "Thesis",
		StatusPath: path,
	})
	run(m.Init())

	s, err := ReadStatus(path)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.False(t, s.Running)
	assert.Equal(t, "Thesis", s.Title)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	s, err = ReadStatus(path)
	require.NoError(t, err)
	assert.True(t, s.Running)
	assert.Equal(t, 1440, s.Remaining(clock.now.Add(time.Minute)))
}

func TestReadStatusMissingFile(t *testing.T) {
	s, err := ReadStatus(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStatusDescribe(t *testing.T) {
	now := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		want   string
		status Status
	}{
		{
			name:   "running",
			status: Status{Mode: engine.Focus, Running: true, Deadline: now.Add(90 * time.Second), TotalSeconds: 1500},
			want:   "remaining",
		},
		{
			name:   "running past deadline",
			status: Status{Mode: engine.Focus, Running: true, Deadline: now.Add(-time.Second), TotalSeconds: 1500},
			want:   "finished",
		},
		{
			name:   "paused",
			status: Status{Mode: engine.Custom, RemainingSeconds: 600, TotalSeconds: 3600},
			want:   "paused with",
		},
		{
			name:   "idle",
			status: Status{Mode: engine.ShortBreak, RemainingSeconds: 300, TotalSeconds: 300},
			want:   "ready to start 05:00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.status.Describe(now, "15:04"), tc.want)
		})
	}

	assert.Equal(t, 90, cases[0].status.Remaining(now))
	assert.Equal(t, 0, cases[1].status.Remaining(now))
}
