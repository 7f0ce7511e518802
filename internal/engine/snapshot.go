package engine

import "time"

// Snapshot is the persisted form of State. Deadline is an epoch timestamp in
// milliseconds and is nil unless the countdown was running.
type Snapshot struct {
	Deadline         *int64 `json:"deadline"`
	Mode             Mode   `json:"mode"`
	TotalSeconds     int    `json:"total_seconds"`
	CustomSeconds    int    `json:"custom_seconds"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Running          bool   `json:"is_running"`
}

// SnapshotOf converts s to its persisted form.
func SnapshotOf(s State) *Snapshot {
	snap := &Snapshot{
		Mode:             s.Mode,
		TotalSeconds:     s.TotalSeconds,
		CustomSeconds:    s.CustomSeconds,
		RemainingSeconds: s.RemainingSeconds,
		Running:          s.Running,
	}

	if s.Running && !s.Deadline.IsZero() {
		ms := s.Deadline.UnixMilli()
		snap.Deadline = &ms
	}

	return snap
}

// DeadlineTime returns the stored deadline, or the zero time.
func (s *Snapshot) DeadlineTime() time.Time {
	if s.Deadline == nil {
		return time.Time{}
	}

	return time.UnixMilli(*s.Deadline)
}

func (s *Snapshot) clone() Snapshot {
	c := *s
	if s.Deadline != nil {
		d := *s.Deadline
		c.Deadline = &d
	}

	return c
}

func (s *Snapshot) equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}

	if (s.Deadline == nil) != (o.Deadline == nil) {
		return false
	}

	if s.Deadline != nil && *s.Deadline != *o.Deadline {
		return false
	}

	return s.Mode == o.Mode &&
		s.TotalSeconds == o.TotalSeconds &&
		s.CustomSeconds == o.CustomSeconds &&
		s.RemainingSeconds == o.RemainingSeconds &&
		s.Running == o.Running
}
