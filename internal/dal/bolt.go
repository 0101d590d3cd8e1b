package dal

import (
	"errors"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"
)

type BoltDB struct {
	db *bbolt.DB
}

var (
	ErrBucketMissing    = errors.New("bucket missing")
	ErrDuplicateStation = errors.New("duplicate station")
)

// NewBoltDB wraps an already migrated database.
func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	err := db.View(func(tx *bbolt.Tx) error {
		for _, name := range []string{stationsBucket, snapshotsBucket} {
			if tx.Bucket([]byte(name)) == nil {
				return fmt.Errorf("%w: %s", ErrBucketMissing, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("check buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (s *BoltDB) Close() error {
	return s.db.Close()
}

// stationKey zero-pads numeric IDs so that bbolt's byte order matches numeric order.
// Only canonical numbers are padded: "0123" is kept as is and never shares a key with "123".
func stationKey(id string) []byte {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || strconv.FormatUint(n, 10) != id {
		return []byte(id)
	}
	return []byte(fmt.Sprintf("%020d", n))
}
