package store

import (
	"bytes"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/focuslog/focuslog/internal/models"
)

// reindex rebuilds the ID index from the sessions bucket. Entries pointing at
// missing sessions are dropped and sessions missing from the index are added.
func reindex(tx *bolt.Tx) error {
	sessions := tx.Bucket([]byte(sessionBucket))
	ids := tx.Bucket([]byte(sessionIDBucket))

	var stale [][]byte

	err := ids.ForEach(func(id, key []byte) error {
		if sessions.Get(key) == nil {
			stale = append(stale, bytes.Clone(id))
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range stale {
		if err := ids.Delete(id); err != nil {
			return err
		}
	}

	cur := sessions.Cursor()

	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		var s models.Session

		err := json.Unmarshal(v, &s)
		if err != nil {
			return err
		}

		if bytes.Equal(ids.Get([]byte(s.ID)), k) {
			continue
		}

		err = ids.Put([]byte(s.ID), bytes.Clone(k))
		if err != nil {
			return err
		}
	}

	return nil
}
