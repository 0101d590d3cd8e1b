package dal

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	stationsBucket  = "stations"
	snapshotsBucket = "snapshots"

	snapshotMetaKey = "meta"
)

type (
	Station struct {
		ID           string             `json:"id"`
		Brand        string             `json:"brand,omitempty"`
		Address      string             `json:"address"`
		Municipality string             `json:"municipality"`
		Province     string             `json:"province"`
		PostalCode   string             `json:"postal_code,omitempty"`
		Schedule     string             `json:"schedule"`
		Lat          *float64           `json:"lat,omitempty"`
		Lon          *float64           `json:"lon,omitempty"`
		Prices       map[string]float64 `json:"prices,omitempty"`
	}

	Snapshot struct {
		SourceDate string    `json:"source_date"`
		FetchedAt  time.Time `json:"fetched_at"`
		Stations   []Station `json:"stations"`
	}

	snapshotMeta struct {
		SourceDate string    `json:"source_date"`
		FetchedAt  time.Time `json:"fetched_at"`
		Count      int       `json:"count"`
	}
)

// PutSnapshot replaces every stored station with the ones from s in a single transaction.
// Two stations mapping to the same key fail the whole snapshot with ErrDuplicateStation.
func (s *BoltDB) PutSnapshot(snap Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(stationsBucket)); err != nil {
			return fmt.Errorf("delete stations bucket: %w", err)
		}
		b, err := tx.CreateBucket([]byte(stationsBucket))
		if err != nil {
			return fmt.Errorf("create stations bucket: %w", err)
		}

		for _, st := range snap.Stations {
			data, err := json.Marshal(st)
			if err != nil {
				return fmt.Errorf("marshal station id=%s: %w", st.ID, err)
			}
			key := stationKey(st.ID)
			if b.Get(key) != nil {
				return fmt.Errorf("%w: id=%s", ErrDuplicateStation, st.ID)
			}
			if err := b.Put(key, data); err != nil {
				return fmt.Errorf("put station id=%s: %w", st.ID, err)
			}
		}

		meta, err := json.Marshal(snapshotMeta{
			SourceDate: snap.SourceDate,
			FetchedAt:  snap.FetchedAt,
			Count:      len(snap.Stations),
		})
		if err != nil {
			return fmt.Errorf("marshal snapshot meta: %w", err)
		}
		return tx.Bucket([]byte(snapshotsBucket)).Put([]byte(snapshotMetaKey), meta)
	})
}

// GetSnapshot returns false until the first PutSnapshot.
func (s *BoltDB) GetSnapshot() (Snapshot, bool, error) {
	var res Snapshot
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(snapshotsBucket)).Get([]byte(snapshotMetaKey))
		if data == nil {
			return nil
		}
		found = true

		var meta snapshotMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("unmarshal snapshot meta: %w", err)
		}
		res.SourceDate = meta.SourceDate
		res.FetchedAt = meta.FetchedAt
		res.Stations = make([]Station, 0, meta.Count)

		return tx.Bucket([]byte(stationsBucket)).ForEach(func(k, v []byte) error {
			var st Station
			if err := json.Unmarshal(v, &st); err != nil {
				return fmt.Errorf("unmarshal station key=%s: %w", k, err)
			}
			res.Stations = append(res.Stations, st)
			return nil
		})
	})

	return res, found, err
}

func (s *BoltDB) GetStation(id string) (Station, bool, error) {
	var res Station
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(stationsBucket)).Get(stationKey(id))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &res)
	})

	return res, found, err
}
