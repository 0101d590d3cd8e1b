package v3

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// Meta is the snapshot metadata document introduced by this migration.
type Meta struct {
	SourceDate string    `json:"source_date"`
	FetchedAt  time.Time `json:"fetched_at"`
	Count      int       `json:"count"`
}

// MigrationV3 adds the snapshots bucket. Databases that already hold stations from v2 get a
// metadata record with the current time, so the data is served instead of being reported
// as never fetched.
type MigrationV3 struct {
	now func() time.Time
}

func (m *MigrationV3) Version() int {
	return 3 //nolint:mnd // version 3
}

func (m *MigrationV3) Description() string {
	return "Create snapshots bucket and backfill metadata for existing stations"
}

func (m *MigrationV3) Up(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		snapshots, err := tx.CreateBucketIfNotExists([]byte("snapshots"))
		if err != nil {
			return fmt.Errorf("create snapshots bucket: %w", err)
		}

		stations := tx.Bucket([]byte("stations"))
		if stations == nil {
			return fmt.Errorf("stations bucket not found")
		}
		count := 0
		c := stations.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			count++
		}
		if count == 0 || snapshots.Get([]byte("meta")) != nil {
			return nil
		}

		data, err := json.Marshal(Meta{FetchedAt: m.now(), Count: count})
		if err != nil {
			return fmt.Errorf("marshal snapshot meta: %w", err)
		}
		return snapshots.Put([]byte("meta"), data)
	})
}

func New() *MigrationV3 {
	return &MigrationV3{now: time.Now}
}
