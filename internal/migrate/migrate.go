// Package migrate evolves the persisted schema across application versions.
// Migrations are statically registered in a fixed order, so presence and
// ordering are verifiable at compile time rather than discovered at runtime.
package migrate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

// Kind separates plain data migrations from store-structure migrations.
// Data migrations rewrite records and group their writes in a transaction
// via the store's Tx helper; schema migrations alter indexes through the raw
// statement path.
type Kind string

const (
	KindData   Kind = "data"
	KindSchema Kind = "schema"
)

// Migration is one versioned schema step. Versions are strictly increasing
// and unique across the registry. Up applies the step; Down reverts it.
type Migration struct {
	Version int
	Name    string
	Kind    Kind
	Up      func(s *store.Store) error
	Down    func(s *store.Store) error
}

// Runner applies and rolls back migrations against one store, tracking
// applied versions in the migrations record store.
type Runner struct {
	store      *store.Store
	records    *store.Records
	migrations []Migration
}

// NewRunner builds a runner over the given migration list. The list must be
// sorted ascending by version with no duplicates; a malformed list is a
// programming error and is rejected here rather than surfacing mid-run.
func NewRunner(s *store.Store, migrations []Migration) (*Runner, error) {
	prev := 0
	for _, m := range migrations {
		if m.Version <= prev {
			return nil, fmt.Errorf("migration registry not strictly ascending at version %d", m.Version)
		}
		prev = m.Version
	}
	return &Runner{
		store:      s,
		records:    store.NewRecords(s),
		migrations: migrations,
	}, nil
}

// CurrentVersion returns the maximum recorded migration version, or 0.
func (r *Runner) CurrentVersion() (int, error) {
	return r.records.CurrentVersion()
}

// Run applies every migration newer than the current version, in ascending
// order, recording each version immediately after its Up succeeds. A failed
// step aborts the run with a *MigrationError and leaves the recorded version
// at the last success, so partial application stays visible. Returns the
// number of migrations applied; with nothing pending it performs zero
// writes.
func (r *Runner) Run() (int, error) {
	current, err := r.records.CurrentVersion()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("running migration", "version", m.Version, "name", m.Name, "kind", m.Kind)
		if err := m.Up(r.store); err != nil {
			return applied, &types.MigrationError{Version: m.Version, Name: m.Name, Err: err}
		}
		if err := r.records.Record(m.Version, time.Now()); err != nil {
			return applied, &types.MigrationError{Version: m.Version, Name: m.Name, Err: err}
		}
		applied++
		slog.Info("migration completed", "version", m.Version)
	}

	if applied == 0 {
		slog.Debug("database is up to date")
	}
	return applied, nil
}

// Rollback reverts migrations down to targetVersion: every migration with
// targetVersion < version <= currentVersion runs its Down in descending
// order, and its record is removed after the Down succeeds, which leaves the
// target as the new current version. A targetVersion at or above the current
// version is a no-op.
func (r *Runner) Rollback(targetVersion int) error {
	current, err := r.records.CurrentVersion()
	if err != nil {
		return err
	}
	if targetVersion >= current {
		slog.Debug("nothing to roll back", "target", targetVersion, "current", current)
		return nil
	}

	for i := len(r.migrations) - 1; i >= 0; i-- {
		m := r.migrations[i]
		if m.Version <= targetVersion || m.Version > current {
			continue
		}

		slog.Info("rolling back migration", "version", m.Version, "name", m.Name)
		if err := m.Down(r.store); err != nil {
			return &types.MigrationError{Version: m.Version, Name: m.Name, Err: err}
		}
		if err := r.records.Remove(m.Version); err != nil {
			return &types.MigrationError{Version: m.Version, Name: m.Name, Err: err}
		}
		slog.Info("rollback completed", "version", m.Version)
	}
	return nil
}
