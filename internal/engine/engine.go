// Package engine implements the countdown state machine behind the focus
// timer. The engine is driven by discrete events (user commands and periodic
// ticks) on a single goroutine, persists itself after every change, and
// pauses instead of crediting time when the gap between two ticks indicates
// that the machine was asleep.
package engine

import (
	"log/slog"
	"time"
)

const (
	// DefaultTickInterval is how often a running engine should be ticked.
	DefaultTickInterval = 200 * time.Millisecond
	// DefaultAnomalyThreshold is the largest gap between two ticks that is
	// still treated as real elapsed time.
	DefaultAnomalyThreshold = 5 * time.Second
)

const (
	completionTitle = "Time's up!"
	focusFinished   = "Focus session finished."
	timerFinished   = "Timer finished."
)

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the store used to save and restore snapshots.
func WithStore(s SnapshotStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithNotifier sets the sink for permission requests and completion alerts.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithClock overrides the clock used by commands that need the current time.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithAnomalyThreshold overrides DefaultAnomalyThreshold.
func WithAnomalyThreshold(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.threshold = d
		}
	}
}

// WithOnComplete registers fn to receive the length of every interval that
// counts down to zero.
func WithOnComplete(fn func(totalSeconds int)) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// WithLogger sets the logger for side-effect failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine owns the countdown state of one timer session. It is not safe for
// concurrent use.
type Engine struct {
	lastTick            time.Time
	store               SnapshotStore
	notifier            Notifier
	clock               Clock
	onComplete          func(totalSeconds int)
	logger              *slog.Logger
	saved               *Snapshot
	catalog             Catalog
	state               State
	threshold           time.Duration
	permissionRequested bool
}

// New creates an engine in Focus mode and restores any previously saved
// snapshot from the configured store.
func New(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:   catalog,
		clock:     SystemClock,
		notifier:  noopNotifier{},
		threshold: DefaultAnomalyThreshold,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	custom := catalog.Seconds(Custom)
	total := catalog.Seconds(Focus)

	e.state = State{
		Mode:             Focus,
		TotalSeconds:     total,
		RemainingSeconds: total,
		CustomSeconds:    custom,
	}

	e.restore()

	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Catalog returns the presets the engine was built with.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// SwitchMode stops the countdown and loads the full duration of mode. For
// Custom, a positive customSeconds replaces the previous custom duration
// after being clamped to the catalog bounds; it is ignored for other modes.
// Unknown modes leave the state untouched.
func (e *Engine) SwitchMode(mode Mode, customSeconds int) {
	if !mode.Valid() {
		e.logger.Warn("ignoring switch to unknown mode", slog.String("mode", string(mode)))
		return
	}

	if mode == Custom && customSeconds > 0 {
		e.state.CustomSeconds = e.catalog.ClampCustom(customSeconds)
	}

	e.state.Mode = mode
	e.state.TotalSeconds = e.totalFor(mode)
	e.state.RemainingSeconds = e.state.TotalSeconds
	e.stop()
	e.persist()
}

// Toggle starts a stopped countdown or pauses a running one.
func (e *Engine) Toggle() {
	if e.state.Running {
		e.stop()
		e.persist()

		return
	}

	// a finished interval starts over
	if e.state.RemainingSeconds == 0 {
		e.state.RemainingSeconds = e.state.TotalSeconds
	}

	e.requestPermission()

	now := e.clock.Now()

	e.state.Running = true
	e.state.Deadline = now.Add(time.Duration(e.state.RemainingSeconds) * time.Second)
	e.lastTick = now

	e.persist()
}

// Reset stops the countdown and restores the full duration of the mode.
func (e *Engine) Reset() {
	e.stop()
	e.state.RemainingSeconds = e.state.TotalSeconds
	e.persist()
}

// Tick advances a running countdown to now. A gap since the previous tick
// larger than the anomaly threshold pauses the countdown at the value it had
// at the previous tick.
func (e *Engine) Tick(now time.Time) {
	if !e.state.Running {
		return
	}

	if gap := now.Sub(e.lastTick); gap > e.threshold {
		remaining := secondsUntil(e.state.Deadline, e.lastTick)

		e.state.RemainingSeconds = e.clamp(remaining)
		e.stop()

		e.logger.Warn(
			"clock anomaly detected, pausing timer",
			slog.Duration("gap", gap),
			slog.Int("remaining_seconds", e.state.RemainingSeconds),
		)

		e.persist()

		return
	}

	e.lastTick = now

	remaining := secondsUntil(e.state.Deadline, now)
	if remaining > 0 {
		e.state.RemainingSeconds = e.clamp(remaining)
		e.persist()

		return
	}

	e.state.RemainingSeconds = 0
	e.stop()
	e.persist()

	e.notifyCompletion()

	if e.onComplete != nil {
		e.onComplete(e.state.TotalSeconds)
	}
}

// StopAndSave ends the current interval early and returns the number of
// seconds to credit for it. Zero means there is nothing to record: the
// interval never started, was already credited on completion, or has not
// accumulated a full second yet.
func (e *Engine) StopAndSave() int {
	switch e.state.Status() {
	case Idle:
		return 0
	case Completed:
		e.state.RemainingSeconds = e.state.TotalSeconds
		e.persist()

		return 0
	}

	elapsed := e.state.Elapsed()
	if elapsed <= 0 {
		return 0
	}

	e.stop()
	e.state.RemainingSeconds = e.state.TotalSeconds
	e.persist()

	return elapsed
}

func (e *Engine) stop() {
	e.state.Running = false
	e.state.Deadline = time.Time{}
}

func (e *Engine) clamp(secs int) int {
	if secs < 0 {
		return 0
	}

	if secs > e.state.TotalSeconds {
		return e.state.TotalSeconds
	}

	return secs
}

func (e *Engine) totalFor(mode Mode) int {
	if mode == Custom {
		return e.state.CustomSeconds
	}

	return e.catalog.Seconds(mode)
}

func (e *Engine) requestPermission() {
	if e.permissionRequested {
		return
	}

	e.permissionRequested = true

	if err := e.notifier.RequestPermission(); err != nil {
		e.logger.Debug("notification permission request failed", slog.Any("error", err))
	}
}

func (e *Engine) notifyCompletion() {
	body := timerFinished
	if e.state.Mode == Focus {
		body = focusFinished
	}

	if err := e.notifier.Notify(completionTitle, body); err != nil {
		e.logger.Warn("unable to display notification", slog.Any("error", err))
	}
}

// persist writes the state when it differs from the last saved snapshot.
func (e *Engine) persist() {
	if e.store == nil {
		return
	}

	snap := SnapshotOf(e.state)
	if snap.equal(e.saved) {
		return
	}

	if err := e.store.Save(snap); err != nil {
		e.logger.Warn("unable to persist timer state", slog.Any("error", err))
		return
	}

	e.saved = snap
}

func (e *Engine) restore() {
	if e.store == nil {
		return
	}

	snap, err := e.store.Load()
	if err != nil {
		e.logger.Warn("unable to restore timer state", slog.Any("error", err))
		return
	}

	if snap == nil || !snap.Mode.Valid() {
		return
	}

	if snap.CustomSeconds > 0 {
		e.state.CustomSeconds = e.catalog.ClampCustom(snap.CustomSeconds)
	}

	e.state.Mode = snap.Mode
	e.state.TotalSeconds = e.totalFor(snap.Mode)
	e.state.RemainingSeconds = e.clamp(snap.RemainingSeconds)

	deadline := snap.DeadlineTime()

	if snap.Running && !deadline.IsZero() {
		now := e.clock.Now()

		remaining := secondsUntil(deadline, now)
		if remaining > 0 {
			// the preset may have shrunk since the snapshot was taken
			if remaining > e.state.TotalSeconds {
				remaining = e.state.TotalSeconds
				deadline = now.Add(time.Duration(remaining) * time.Second)
			}

			e.state.Running = true
			e.state.Deadline = deadline
			e.state.RemainingSeconds = remaining
			e.lastTick = now
		} else {
			e.state.RemainingSeconds = 0

			e.logger.Info(
				"interval finished while the timer was closed",
				slog.String("mode", string(e.state.Mode)),
			)

			e.persist()

			if e.onComplete != nil {
				e.onComplete(e.state.TotalSeconds)
			}

			return
		}
	}

	e.saved = snap
	e.persist()
}
