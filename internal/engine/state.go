package engine

import (
	"math"
	"time"
)

// Status is the coarse state of the countdown.
type Status int

const (
	Idle Status = iota
	Running
	Paused
	// Completed means the interval reached zero and has not been reset yet.
	Completed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}

	return "unknown"
}

// State is the countdown state owned by the engine. Deadline is the zero
// time whenever Running is false.
type State struct {
	Deadline         time.Time
	Mode             Mode
	TotalSeconds     int
	RemainingSeconds int
	CustomSeconds    int
	Running          bool
}

// Status derives the state machine position from the raw fields.
func (s State) Status() Status {
	switch {
	case s.Running:
		return Running
	case s.RemainingSeconds == 0:
		return Completed
	case s.RemainingSeconds == s.TotalSeconds:
		return Idle
	default:
		return Paused
	}
}

// Elapsed is the number of seconds credited to the current interval.
func (s State) Elapsed() int {
	return s.TotalSeconds - s.RemainingSeconds
}

// Progress is the completed fraction of the interval in [0, 1].
func (s State) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}

	return float64(s.Elapsed()) / float64(s.TotalSeconds)
}

// secondsUntil rounds the time between from and deadline up to whole
// seconds. The result is negative or zero once the deadline has passed.
func secondsUntil(deadline, from time.Time) int {
	return int(math.Ceil(float64(deadline.Sub(from)) / float64(time.Second)))
}
