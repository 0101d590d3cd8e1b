package migrations

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	v1 "github.com/Roma7-7-7/fuel-stations/internal/dal/migrations/v1"
	v2 "github.com/Roma7-7-7/fuel-stations/internal/dal/migrations/v2"
	v3 "github.com/Roma7-7-7/fuel-stations/internal/dal/migrations/v3"
)

// Migration is a single schema step of the stations database.
type Migration interface {
	Version() int
	Description() string
	Up(db *bbolt.DB) error
}

var registeredMigrations []Migration

const migrationsBucket = "migrations"

func init() {
	registerMigration(v1.New())
	registerMigration(v2.New())
	registerMigration(v3.New())
}

func registerMigration(m Migration) {
	registeredMigrations = append(registeredMigrations, m)
}

// RunMigrations applies every registered migration that is not yet recorded in the
// migrations bucket, in version order.
func RunMigrations(db *bbolt.DB, log *slog.Logger) error {
	log.Info("Starting database migrations")

	if err := ensureMigrationsBucket(db); err != nil {
		return fmt.Errorf("ensure migrations bucket: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	sort.Slice(registeredMigrations, func(i, j int) bool {
		return registeredMigrations[i].Version() < registeredMigrations[j].Version()
	})

	appliedCount := 0
	for _, migration := range registeredMigrations {
		version := migration.Version()
		log := log.With("version", version, "description", migration.Description())

		if appliedAt, ok := applied[version]; ok {
			log.Debug("Skipping already-applied migration", "applied_at", appliedAt.Format(time.RFC3339))
			continue
		}

		log.Info("Applying migration")
		start := time.Now()
		if err := migration.Up(db); err != nil {
			log.Error("Migration failed", "error", err)
			return fmt.Errorf("migration v%d failed: %w", version, err)
		}

		if err := recordMigration(db, version); err != nil {
			return fmt.Errorf("record migration v%d: %w", version, err)
		}

		appliedCount++
		log.Info("Migration applied", "duration", time.Since(start))
	}

	log.Info("Database migrations finished", "applied_count", appliedCount)
	return nil
}

func ensureMigrationsBucket(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(migrationsBucket))
		return err
	})
}

func getAppliedMigrations(db *bbolt.DB) (map[int]time.Time, error) {
	applied := make(map[int]time.Time)

	err := db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(migrationsBucket))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var version int
			if _, err := fmt.Sscanf(string(k), "v%d", &version); err != nil {
				return fmt.Errorf("parse version from key %s: %w", k, err)
			}

			appliedAt, err := time.Parse(time.RFC3339, string(v))
			if err != nil {
				return fmt.Errorf("parse timestamp for v%d: %w", version, err)
			}

			applied[version] = appliedAt
			return nil
		})
	})

	return applied, err
}

func recordMigration(db *bbolt.DB, version int) error {
	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(migrationsBucket))
		if b == nil {
			return fmt.Errorf("migrations bucket not found")
		}
		return b.Put([]byte(fmt.Sprintf("v%d", version)), []byte(time.Now().Format(time.RFC3339)))
	})
}
