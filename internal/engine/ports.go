package engine

import (
	"sync"
	"time"
)

// SnapshotStore persists the engine state across restarts. Load returns a
// nil snapshot when nothing has been saved yet.
type SnapshotStore interface {
	Load() (*Snapshot, error)
	Save(snap *Snapshot) error
}

// Notifier delivers user alerts. Implementations must not block the caller.
type Notifier interface {
	RequestPermission() error
	Notify(title, body string) error
}

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// MemoryStore is a SnapshotStore that keeps the last snapshot in memory.
type MemoryStore struct {
	snap  *Snapshot
	Saves int
	mu    sync.Mutex
}

func (m *MemoryStore) Load() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap == nil {
		return nil, nil
	}

	s := m.snap.clone()

	return &s, nil
}

func (m *MemoryStore) Save(snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := snap.clone()
	m.snap = &s
	m.Saves++

	return nil
}

type noopNotifier struct{}

func (noopNotifier) RequestPermission() error { return nil }

func (noopNotifier) Notify(_, _ string) error { return nil }
