// Schema DDL for the inventory record stores. The base schema carries the
// by-name and by-category indexes; the by-updated indexes arrive through the
// add_updated_index migration, which owns their lifecycle.
package store

import "database/sql"

const (
	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    color TEXT NOT NULL,
    parent_id TEXT,
    is_folder INTEGER NOT NULL DEFAULT 0,
    path TEXT NOT NULL DEFAULT '[]',
    level INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category_id TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price REAL NOT NULL,
    purchase_date TEXT NOT NULL,
    description TEXT,
    notes TEXT,
    image TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createMigrations = `CREATE TABLE IF NOT EXISTS migrations (
    version INTEGER PRIMARY KEY,
    timestamp TEXT NOT NULL
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createCategoriesByName = `CREATE INDEX IF NOT EXISTS categories_by_name ON categories(name);`
	createItemsByName      = `CREATE INDEX IF NOT EXISTS items_by_name ON items(name);`
	createItemsByCategory  = `CREATE INDEX IF NOT EXISTS items_by_category ON items(category_id);`
)

// Statements owned by the add_updated_index migration.
const (
	CreateCategoriesByUpdated = `CREATE INDEX IF NOT EXISTS categories_by_updated ON categories(updated_at);`
	CreateItemsByUpdated      = `CREATE INDEX IF NOT EXISTS items_by_updated ON items(updated_at);`
	DropCategoriesByUpdated   = `DROP INDEX IF EXISTS categories_by_updated;`
	DropItemsByUpdated        = `DROP INDEX IF EXISTS items_by_updated;`
)

// applySchema creates the record stores and their base secondary indexes.
// Every statement is idempotent, so reopening an existing database is safe.
func applySchema(db *sql.DB) error {
	statements := []string{
		createCategories,
		createItems,
		createMigrations,
		createSettings,
		createCategoriesByName,
		createItemsByName,
		createItemsByCategory,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
