// Migration-record bookkeeping: one row per applied migration, keyed by
// version. The current schema version is the maximum recorded version.
package store

import (
	"fmt"
	"time"

	"github.com/omidnw/room-organizer/pkg/types"
)

// Records provides access to the migrations record store.
type Records struct {
	s *Store
}

// NewRecords returns a migration-record repository over the given store.
func NewRecords(s *Store) *Records {
	return &Records{s: s}
}

// CurrentVersion returns the maximum recorded migration version, or 0 when
// no migration has been recorded.
func (r *Records) CurrentVersion() (int, error) {
	db, err := r.s.handle()
	if err != nil {
		return 0, err
	}
	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading current version: %w", err)
	}
	return version, nil
}

// Record marks version as applied at the given time. Re-recording an already
// applied version overwrites its timestamp.
func (r *Records) Record(version int, appliedAt time.Time) error {
	db, err := r.s.handle()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO migrations (version, timestamp) VALUES (?, ?) ON CONFLICT(version) DO UPDATE SET timestamp = excluded.timestamp",
		version, encodeTime(appliedAt),
	)
	if err != nil {
		return fmt.Errorf("recording version %d: %w", version, err)
	}
	return nil
}

// Remove deletes the record for version, lowering the current version when
// it was the maximum.
func (r *Records) Remove(version int) error {
	db, err := r.s.handle()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM migrations WHERE version = ?", version); err != nil {
		return fmt.Errorf("removing version %d: %w", version, err)
	}
	return nil
}

// All returns every migration record ordered by version ascending.
func (r *Records) All() ([]types.MigrationRecord, error) {
	db, err := r.s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT version, timestamp FROM migrations ORDER BY version ASC")
	if err != nil {
		return nil, fmt.Errorf("querying migration records: %w", err)
	}
	defer rows.Close()

	results := []types.MigrationRecord{}
	for rows.Next() {
		var (
			rec types.MigrationRecord
			ts  string
		)
		if err := rows.Scan(&rec.Version, &ts); err != nil {
			return nil, fmt.Errorf("hydrating migration record: %w", err)
		}
		if rec.Timestamp, err = decodeTime(ts); err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migration records: %w", err)
	}
	return results, nil
}
