// Package store implements the local inventory database: an embedded SQLite
// store holding the categories, items, migrations, and settings record
// stores, with the repositories and bulk-transfer operations over them.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/omidnw/room-organizer/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "inventory.db"

// Store owns the live database handle. It is an explicit dependency passed
// to the repositories rather than process-global state, so tests and callers
// can hold isolated instances.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB
	config  types.Config
	dataDir string
	closed  bool
}

// Open creates the data directory if needed, opens (or creates) the database
// file, and applies the base schema. Opening an already-initialized database
// is a no-op on the schema; all DDL is idempotent.
func Open(config types.Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single connection: per-connection pragmas hold for every statement,
	// and the pool never hands a statement a connection that missed them.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{
		db:      db,
		config:  config,
		dataDir: config.DataDir,
	}, nil
}

// Config returns the configuration the store was opened with.
func (s *Store) Config() types.Config {
	return s.config
}

// Close releases the database handle. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		s.db = nil
	}
	return nil
}

// Reset destroys the persisted database entirely: it closes the handle and
// removes the database files. If another open handle holds a write lock the
// reset is refused with ErrStorageBlocked so the caller can retry after
// closing other sessions; the store stays usable in that case.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}

	// Probe for a competing writer before tearing anything down.
	if _, err := s.db.Exec("PRAGMA busy_timeout = 0"); err != nil {
		return fmt.Errorf("probing database: %w", err)
	}
	tx, err := s.db.Begin()
	if err == nil {
		_, err = tx.Exec("DELETE FROM settings WHERE 0")
	}
	if err != nil {
		if tx != nil {
			_ = tx.Rollback()
		}
		_, _ = s.db.Exec("PRAGMA busy_timeout = 5000")
		if isBusy(err) {
			return types.ErrStorageBlocked
		}
		return fmt.Errorf("probing database: %w", err)
	}
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("releasing probe transaction: %w", err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.db = nil
	s.closed = true

	dbPath := filepath.Join(s.dataDir, DBFileName)
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

// handle returns the live database handle, or ErrStoreClosed.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed || s.db == nil {
		return nil, types.ErrStoreClosed
	}
	return s.db, nil
}

// Tx runs fn inside a transaction, rolling back on error.
func (s *Store) Tx(fn func(tx *sql.Tx) error) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Exec runs a statement against the live handle. Used by schema migrations
// for index changes that must bypass the plain data path.
func (s *Store) Exec(query string, args ...any) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return nil
}

// isBusy reports whether err is SQLite's locked/busy condition.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "busy") || strings.Contains(msg, "locked")
}

// newID generates a new UUID v7 for record IDs, falling back to v4 if v7
// generation fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
