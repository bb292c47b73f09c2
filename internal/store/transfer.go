// Bulk data transfer: whole-store export and import with merge-vs-replace
// semantics and a forward-compatibility version guard. Export files are
// written with the temp-file, fsync, rename pattern.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omidnw/room-organizer/pkg/types"
)

// Export snapshots all record stores, the current schema version, and an
// export timestamp into one serializable document. The multi-store read runs
// in a single transaction.
func (s *Store) Export() (*types.ExportDocument, error) {
	doc := &types.ExportDocument{Timestamp: time.Now()}

	err := s.Tx(func(tx *sql.Tx) error {
		if err := tx.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&doc.Version); err != nil {
			return fmt.Errorf("reading current version: %w", err)
		}

		var err error
		if doc.Data.Categories, err = exportCategories(tx); err != nil {
			return err
		}
		if doc.Data.Items, err = exportItems(tx); err != nil {
			return err
		}
		if doc.Data.Migrations, err = exportMigrations(tx); err != nil {
			return err
		}
		if doc.Data.Settings, err = exportSettings(tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Import loads an export document. Documents recorded at a schema version
// newer than the local one are refused entirely with ErrVersionConflict.
// Replace mode clears every store first; merge mode inserts only records
// whose key does not already exist (collision means skip, never overwrite).
// The multi-store write runs in a single transaction.
func (s *Store) Import(doc *types.ExportDocument, opts types.ImportOptions) error {
	current, err := NewRecords(s).CurrentVersion()
	if err != nil {
		return err
	}
	if doc.Version > current {
		return fmt.Errorf("document version %d, local version %d: %w",
			doc.Version, current, types.ErrVersionConflict)
	}

	return s.Tx(func(tx *sql.Tx) error {
		if !opts.Merge {
			for _, table := range []string{"categories", "items", "migrations", "settings"} {
				if _, err := tx.Exec("DELETE FROM " + table); err != nil {
					return fmt.Errorf("clearing %s: %w", table, err)
				}
			}
		}

		// INSERT OR IGNORE implements the merge policy: an existing key wins
		// and the imported record is skipped. In replace mode the stores are
		// empty so nothing is ever ignored.
		for _, cat := range doc.Data.Categories {
			encodedPath, err := encodePath(cat.Path)
			if err != nil {
				return err
			}
			_, err = tx.Exec(
				"INSERT OR IGNORE INTO categories ("+categoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
				cat.ID, cat.Name, cat.Description, cat.Color, cat.ParentID, cat.IsFolder,
				encodedPath, cat.Level, encodeTime(cat.CreatedAt), encodeTime(cat.UpdatedAt),
			)
			if err != nil {
				return fmt.Errorf("importing category %s: %w", cat.ID, err)
			}
		}

		for _, item := range doc.Data.Items {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO items ("+itemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
				item.ID, item.Name, item.CategoryID, item.Quantity, item.Price, item.PurchaseDate,
				item.Description, item.Notes, item.Image, encodeTime(item.CreatedAt), encodeTime(item.UpdatedAt),
			)
			if err != nil {
				return fmt.Errorf("importing item %s: %w", item.ID, err)
			}
		}

		for _, rec := range doc.Data.Migrations {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO migrations (version, timestamp) VALUES (?, ?)",
				rec.Version, encodeTime(rec.Timestamp),
			)
			if err != nil {
				return fmt.Errorf("importing migration record %d: %w", rec.Version, err)
			}
		}

		for _, entry := range doc.Data.Settings {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)",
				entry.Key, entry.Value,
			)
			if err != nil {
				return fmt.Errorf("importing setting %s: %w", entry.Key, err)
			}
		}
		return nil
	})
}

// WriteExportFile marshals the document and writes it atomically: temp file,
// fsync, rename.
func WriteExportFile(path string, doc *types.ExportDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export document: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing export document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadExportFile reads and unmarshals an export document.
func ReadExportFile(path string) (*types.ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}
	var doc types.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling export document: %w", err)
	}
	return &doc, nil
}

func exportCategories(tx *sql.Tx) ([]types.Category, error) {
	rows, err := tx.Query("SELECT " + categoryColumns + " FROM categories ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("exporting categories: %w", err)
	}
	defer rows.Close()

	results := []types.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		results = append(results, *cat)
	}
	return results, rows.Err()
}

func exportItems(tx *sql.Tx) ([]types.Item, error) {
	rows, err := tx.Query("SELECT " + itemColumns + " FROM items ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("exporting items: %w", err)
	}
	defer rows.Close()

	results := []types.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating item: %w", err)
		}
		results = append(results, *item)
	}
	return results, rows.Err()
}

func exportMigrations(tx *sql.Tx) ([]types.MigrationRecord, error) {
	rows, err := tx.Query("SELECT version, timestamp FROM migrations ORDER BY version ASC")
	if err != nil {
		return nil, fmt.Errorf("exporting migration records: %w", err)
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
	return results, rows.Err()
}

func exportSettings(tx *sql.Tx) ([]types.Setting, error) {
	rows, err := tx.Query("SELECT key, value FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("exporting settings: %w", err)
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
	return results, rows.Err()
}
