package types

import "time"

// MigrationRecord marks one applied migration, keyed by version. The current
// schema version is the maximum recorded version, or 0 when none is recorded.
type MigrationRecord struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
