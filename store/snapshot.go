package store

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/focuslog/focuslog/internal/engine"
)

func (c *Client) LoadSnapshot(profile string) (*engine.Snapshot, error) {
	var snap *engine.Snapshot

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(timerBucket)).Get([]byte(profile))
		if len(v) == 0 {
			return nil
		}

		snap = &engine.Snapshot{}

		return json.Unmarshal(v, snap)
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func (c *Client) SaveSnapshot(profile string, snap *engine.Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).Put([]byte(profile), value)
	})
}

func (c *Client) DeleteSnapshot(profile string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).Delete([]byte(profile))
	})
}

// Snapshots returns the timer state slot of profile as an
// engine.SnapshotStore.
func (c *Client) Snapshots(profile string) engine.SnapshotStore {
	return &snapshotSlot{db: c, profile: profile}
}

type snapshotSlot struct {
	db      DB
	profile string
}

func (s *snapshotSlot) Load() (*engine.Snapshot, error) {
	return s.db.LoadSnapshot(s.profile)
}

func (s *snapshotSlot) Save(snap *engine.Snapshot) error {
	return s.db.SaveSnapshot(s.profile, snap)
}
