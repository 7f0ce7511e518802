package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/timeutil"
	"github.com/focuslog/focuslog/internal/ui"
)

// Status is the state a running timer publishes for the status command.
type Status struct {
	Deadline         time.Time   `json:"deadline"`
	Mode             engine.Mode `json:"mode"`
	Title            string      `json:"title,omitempty"`
	TotalSeconds     int         `json:"total_seconds"`
	RemainingSeconds int         `json:"remaining_seconds"`
	Running          bool        `json:"is_running"`
}

// StatusFromSnapshot converts a persisted engine snapshot.
func StatusFromSnapshot(snap *engine.Snapshot) Status {
	return Status{
		Deadline:         snap.DeadlineTime(),
		Mode:             snap.Mode,
		TotalSeconds:     snap.TotalSeconds,
		RemainingSeconds: snap.RemainingSeconds,
		Running:          snap.Running,
	}
}

func statusOf(st engine.State, title string) Status {
	return Status{
		Deadline:         st.Deadline,
		Mode:             st.Mode,
		Title:            title,
		TotalSeconds:     st.TotalSeconds,
		RemainingSeconds: st.RemainingSeconds,
		Running:          st.Running,
	}
}

// Remaining returns the seconds left at now.
func (s Status) Remaining(now time.Time) int {
	if !s.Running || s.Deadline.IsZero() {
		return s.RemainingSeconds
	}

	secs := int(math.Ceil(s.Deadline.Sub(now).Seconds()))

	return max(secs, 0)
}

// Describe renders the status as a single line.
func (s Status) Describe(now time.Time, timeFormat string) string {
	label := ui.Green("[" + s.Mode.Label() + "]")
	remaining := s.Remaining(now)

	var text string

	switch {
	case s.Running && remaining > 0:
		text = fmt.Sprintf(
			"%s remaining (until %s)",
			ui.Highlight(timeutil.Clock(remaining)),
			s.Deadline.Local().Format(timeFormat),
		)
	case s.Running, remaining == 0:
		text = "finished"
	case remaining == s.TotalSeconds:
		text = "ready to start " + timeutil.Clock(remaining)
	default:
		text = "paused with " + ui.Highlight(timeutil.Clock(remaining)) + " remaining"
	}

	if s.Title != "" {
		text += " >>> " + s.Title
	}

	return label + ": " + text
}

// ReadStatus loads the status published by a running timer. It returns nil
// when no status file exists.
func ReadStatus(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// PrintStatus writes a one line description of s to w.
func PrintStatus(w io.Writer, s *Status, now time.Time, timeFormat string) error {
	if s == nil {
		_, err := fmt.Fprintln(w, "No timer has been started")
		return err
	}

	_, err := fmt.Fprintln(w, s.Describe(now, timeFormat))

	return err
}

// writeStatus publishes the timer state when it has changed.
func (m *Model) writeStatus() {
	if m.statusPath == "" {
		return
	}

	s := statusOf(m.engine.State(), m.title)

	key := s
	if key.Running {
		// the deadline already determines the remaining time
		key.RemainingSeconds = 0
	}

	b, err := json.Marshal(key)
	if err != nil || string(b) == m.lastStatus {
		return
	}

	if err := writeFileAtomic(m.statusPath, s); err != nil {
		m.logger.Warn("unable to write status file", slog.Any("error", err))
		return
	}

	m.lastStatus = string(b)
}

func writeFileAtomic(path string, s Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".status-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
