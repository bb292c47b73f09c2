// Package store provides the public API for the inventory store. It exposes
// the factory functions and the repository types for external consumers while
// keeping the SQLite implementation internal.
package store

import (
	internal "github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

// Store owns the live database handle.
type Store = internal.Store

// Repository types over one Store.
type (
	Categories = internal.Categories
	Items      = internal.Items
	Settings   = internal.Settings
	Records    = internal.Records
)

// ListOptions control pagination and subtree inclusion on item queries.
type ListOptions = internal.ListOptions

// DBFileName is the database file created inside the data directory.
const DBFileName = internal.DBFileName

// Open creates the data directory if needed, opens (or creates) the database
// file, and applies the base schema.
//
// Example:
//
//	s, err := store.Open(types.Config{DataDir: ".organizer"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
func Open(config types.Config) (*Store, error) {
	return internal.Open(config)
}

// NewCategories returns a category repository over the given store.
func NewCategories(s *Store) *Categories {
	return internal.NewCategories(s)
}

// NewItems returns an item repository over the given store.
func NewItems(s *Store, categories *Categories) *Items {
	return internal.NewItems(s, categories)
}

// NewSettings returns a settings repository over the given store.
func NewSettings(s *Store) *Settings {
	return internal.NewSettings(s)
}

// NewRecords returns a migration-record repository over the given store.
func NewRecords(s *Store) *Records {
	return internal.NewRecords(s)
}

// WriteExportFile marshals the document and writes it atomically.
func WriteExportFile(path string, doc *types.ExportDocument) error {
	return internal.WriteExportFile(path, doc)
}

// ReadExportFile reads and unmarshals an export document.
func ReadExportFile(path string) (*types.ExportDocument, error) {
	return internal.ReadExportFile(path)
}
