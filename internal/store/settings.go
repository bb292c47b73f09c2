// Settings repository: flat key-value entries consumed by formatting in the
// caller layer.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/omidnw/room-organizer/pkg/types"
)

// Settings provides access to the settings record store.
type Settings struct {
	s *Store
}

// NewSettings returns a settings repository over the given store.
func NewSettings(s *Store) *Settings {
	return &Settings{s: s}
}

// Get returns the value for key. Returns ErrNotFound when the key is unset.
func (st *Settings) Get(key string) (string, error) {
	if key == "" {
		return "", types.ErrInvalidID
	}

	db, err := st.s.handle()
	if err != nil {
		return "", err
	}
	var value string
	err = db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("getting setting %s: %w", key, err)
	}
	return value, nil
}

// Set stores the value for key, inserting or overwriting.
func (st *Settings) Set(key, value string) error {
	if key == "" {
		return types.ErrInvalidID
	}

	db, err := st.s.handle()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// All returns every setting entry ordered by key.
func (st *Settings) All() ([]types.Setting, error) {
	db, err := st.s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT key, value FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	results := []types.Setting{}
	for rows.Next() {
		var entry types.Setting
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("hydrating setting: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return results, nil
}
