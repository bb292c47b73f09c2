package types

import "time"

// ExportDocument is the serialized snapshot of the whole store: every record
// store, the schema version the data was written at, and the export time.
type ExportDocument struct {
	Version   int        `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
	Data      ExportData `json:"data"`
}

// ExportData holds the per-store record lists of an export document.
type ExportData struct {
	Categories []Category        `json:"categories"`
	Items      []Item            `json:"items"`
	Migrations []MigrationRecord `json:"migrations"`
	Settings   []Setting         `json:"settings"`
}

// ImportOptions selects the import mode. Merge inserts only records whose ID
// does not already exist locally (collisions are skipped, never overwritten);
// replace clears all stores first and then bulk-inserts.
type ImportOptions struct {
	Merge bool
}
