// Static migration registry. New migrations append here with the next
// version number; the runner rejects out-of-order registrations.
package migrate

import (
	"database/sql"
	"fmt"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

// seededCategory describes one default category created on first setup.
type seededCategory struct {
	name        string
	color       string
	description string
	parent      string // name of the parent folder, empty for roots
	isFolder    bool
}

// defaultCategories are the starter category trees: two root folders with
// their leaf subcategories.
var defaultCategories = []seededCategory{
	{name: "Storage", color: "#3B82F6", description: "Main storage areas", isFolder: true},
	{name: "Furniture", color: "#10B981", description: "Furniture storage", isFolder: true},
	{name: "Storage Boxes", color: "#F97316", description: "Items in storage boxes", parent: "Storage"},
	{name: "Wall Shelves", color: "#14B8A6", description: "Items on wall-mounted shelves", parent: "Storage"},
	{name: "Desk Drawers", color: "#10B981", description: "Items in desk drawers", parent: "Furniture"},
	{name: "Wardrobe", color: "#F59E0B", description: "Clothes and items in wardrobe", parent: "Furniture"},
	{name: "Bedside Cabinet", color: "#8B5CF6", description: "Items in bedside drawers", parent: "Furniture"},
	{name: "Under-bed Storage", color: "#EC4899", description: "Items stored under the bed", parent: "Furniture"},
}

// Registry returns the ordered list of known migrations.
func Registry() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "initial_schema",
			Kind:    KindData,
			// The base record stores and indexes are created by store.Open;
			// this step only establishes version 1 as the schema baseline.
			Up:   func(s *store.Store) error { return nil },
			Down: func(s *store.Store) error { return nil },
		},
		{
			Version: 2,
			Name:    "seed_default_categories",
			Kind:    KindData,
			Up:      seedDefaultCategories,
			Down: func(s *store.Store) error {
				return s.Tx(func(tx *sql.Tx) error {
					if _, err := tx.Exec("DELETE FROM categories"); err != nil {
						return fmt.Errorf("clearing categories: %w", err)
					}
					return nil
				})
			},
		},
		{
			Version: 3,
			Name:    "add_category_hierarchy",
			Kind:    KindData,
			// Rows written before the hierarchy columns existed carry no
			// usable path or level; normalize them to root folders.
			Up: func(s *store.Store) error {
				return s.Tx(func(tx *sql.Tx) error {
					_, err := tx.Exec(
						`UPDATE categories SET path = '[]', level = 0, parent_id = NULL, is_folder = 1
						 WHERE path IS NULL OR path = ''`,
					)
					if err != nil {
						return fmt.Errorf("backfilling hierarchy columns: %w", err)
					}
					return nil
				})
			},
			Down: func(s *store.Store) error {
				return s.Tx(func(tx *sql.Tx) error {
					_, err := tx.Exec(
						"UPDATE categories SET path = '[]', level = 0, parent_id = NULL, is_folder = 0",
					)
					if err != nil {
						return fmt.Errorf("reverting hierarchy columns: %w", err)
					}
					return nil
				})
			},
		},
		{
			Version: 4,
			Name:    "add_updated_index",
			Kind:    KindSchema,
			Up: func(s *store.Store) error {
				if err := s.Exec(store.CreateCategoriesByUpdated); err != nil {
					return err
				}
				return s.Exec(store.CreateItemsByUpdated)
			},
			Down: func(s *store.Store) error {
				if err := s.Exec(store.DropCategoriesByUpdated); err != nil {
					return err
				}
				return s.Exec(store.DropItemsByUpdated)
			},
		},
	}
}

// seedDefaultCategories creates the starter trees through the category
// repository so every seeded row gets a correct materialized path.
func seedDefaultCategories(s *store.Store) error {
	categories := store.NewCategories(s)

	rootIDs := map[string]string{}
	for _, seed := range defaultCategories {
		form := types.CategoryForm{
			Name:        seed.name,
			Color:       seed.color,
			Description: seed.description,
			IsFolder:    seed.isFolder,
		}
		if seed.parent != "" {
			parentID, ok := rootIDs[seed.parent]
			if !ok {
				return fmt.Errorf("seed parent %q not created", seed.parent)
			}
			form.ParentID = &parentID
		}

		cat, err := categories.Create(form)
		if err != nil {
			return fmt.Errorf("seeding category %q: %w", seed.name, err)
		}
		if seed.isFolder {
			rootIDs[seed.name] = cat.ID
		}
	}
	return nil
}
