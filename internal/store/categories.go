// Category repository: CRUD plus the tree-maintenance logic over the
// materialized path/level columns.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/omidnw/room-organizer/pkg/types"
)

const categoryColumns = "id, name, description, color, parent_id, is_folder, path, level, created_at, updated_at"

// Categories provides access to the categories record store.
type Categories struct {
	s *Store
}

// NewCategories returns a category repository over the given store.
func NewCategories(s *Store) *Categories {
	return &Categories{s: s}
}

// Create validates the form, resolves the parent when one is given, computes
// the materialized path and level from it, and inserts the new category.
// A missing parent fails with ErrNotFound; an orphan with a wrong path is
// never created.
func (c *Categories) Create(form types.CategoryForm) (*types.Category, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	path := []string{}
	level := 0
	var parentID *string
	if form.ParentID != nil && *form.ParentID != "" {
		parent, err := c.GetByID(*form.ParentID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, fmt.Errorf("resolving parent %s: %w", *form.ParentID, types.ErrNotFound)
			}
			return nil, err
		}
		path = append(slices.Clone(parent.Path), parent.ID)
		level = parent.Level + 1
		parentID = &parent.ID
	}

	now := time.Now()
	cat := &types.Category{
		ID:          newID(),
		Name:        form.Name,
		Description: form.Description,
		Color:       form.Color,
		ParentID:    parentID,
		IsFolder:    form.IsFolder,
		Path:        path,
		Level:       level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	encodedPath, err := encodePath(cat.Path)
	if err != nil {
		return nil, err
	}

	db, err := c.s.handle()
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO categories ("+categoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		cat.ID, cat.Name, cat.Description, cat.Color, cat.ParentID, cat.IsFolder,
		encodedPath, cat.Level, encodeTime(cat.CreatedAt), encodeTime(cat.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return cat, nil
}

// Update merges the patch into the stored category and refreshes updatedAt.
// Tree position is preserved: path and level are never touched here, only by
// Move. Returns ErrNotFound if the ID does not exist.
func (c *Categories) Update(id string, patch types.CategoryPatch) (*types.Category, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	cat, err := c.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		cat.Name = *patch.Name
	}
	if patch.Description != nil {
		cat.Description = *patch.Description
	}
	if patch.Color != nil {
		cat.Color = *patch.Color
	}
	if patch.IsFolder != nil {
		cat.IsFolder = *patch.IsFolder
	}
	cat.UpdatedAt = time.Now()

	db, err := c.s.handle()
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"UPDATE categories SET name = ?, description = ?, color = ?, is_folder = ?, updated_at = ? WHERE id = ?",
		cat.Name, cat.Description, cat.Color, cat.IsFolder, encodeTime(cat.UpdatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating category %s: %w", id, err)
	}
	return cat, nil
}

// Delete removes the category unconditionally. It does not cascade to child
// categories or contained items; checking for orphans beforehand is the
// caller's responsibility.
func (c *Categories) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := c.s.handle()
	if err != nil {
		return err
	}
	res, err := db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// GetByID retrieves a category. Returns ErrNotFound if the ID does not exist.
func (c *Categories) GetByID(id string) (*types.Category, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := c.s.handle()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	cat, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %s: %w", id, err)
	}
	return cat, nil
}

// GetAll returns every category in by-name index order.
func (c *Categories) GetAll() ([]types.Category, error) {
	return c.query("SELECT " + categoryColumns + " FROM categories ORDER BY name ASC, id ASC")
}

// Search matches the query case-insensitively as a substring of name or
// description. A non-nil parentID scopes the result to direct children of
// that parent.
func (c *Categories) Search(query string, parentID *string) ([]types.Category, error) {
	all, err := c.GetAll()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []types.Category{}
	for _, cat := range all {
		if parentID != nil && (cat.ParentID == nil || *cat.ParentID != *parentID) {
			continue
		}
		if strings.Contains(strings.ToLower(cat.Name), needle) ||
			strings.Contains(strings.ToLower(cat.Description), needle) {
			results = append(results, cat)
		}
	}
	return results, nil
}

// GetChildren returns the direct children of parentID, one level only.
// A nil parentID selects the root categories.
func (c *Categories) GetChildren(parentID *string) ([]types.Category, error) {
	if parentID == nil {
		return c.query("SELECT " + categoryColumns + " FROM categories WHERE parent_id IS NULL ORDER BY name ASC, id ASC")
	}
	return c.query(
		"SELECT "+categoryColumns+" FROM categories WHERE parent_id = ? ORDER BY name ASC, id ASC",
		*parentID,
	)
}

// GetPath resolves the stored ancestor IDs into full records, root-to-parent.
// Dangling IDs are filtered out rather than failing the whole call.
func (c *Categories) GetPath(categoryID string) ([]types.Category, error) {
	cat, err := c.GetByID(categoryID)
	if err != nil {
		return nil, err
	}

	ancestors := []types.Category{}
	for _, id := range cat.Path {
		ancestor, err := c.GetByID(id)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				continue
			}
			return nil, err
		}
		ancestors = append(ancestors, *ancestor)
	}
	return ancestors, nil
}

// GetDescendants returns the full subtree below categoryID, any depth: every
// category whose materialized path contains the ID. A category is never its
// own descendant.
func (c *Categories) GetDescendants(categoryID string) ([]types.Category, error) {
	all, err := c.GetAll()
	if err != nil {
		return nil, err
	}

	descendants := []types.Category{}
	for _, cat := range all {
		if slices.Contains(cat.Path, categoryID) {
			descendants = append(descendants, cat)
		}
	}
	return descendants, nil
}

// GetRecent returns up to limit categories ordered by updatedAt descending,
// ties broken by ID ascending for determinism.
func (c *Categories) GetRecent(limit int) ([]types.Category, error) {
	if limit <= 0 {
		return nil, types.ErrInvalidLimit
	}
	return c.query(
		"SELECT "+categoryColumns+" FROM categories ORDER BY updated_at DESC, id ASC LIMIT ?",
		limit,
	)
}

// Move is the one authoritative reparent operation. It recomputes path and
// level for the moved category and its entire subtree in a single
// transaction. Moving a category under itself or any of its descendants
// fails with ErrInvalidParent; a nil newParentID moves the category to the
// root.
func (c *Categories) Move(id string, newParentID *string) (*types.Category, error) {
	cat, err := c.GetByID(id)
	if err != nil {
		return nil, err
	}

	newPath := []string{}
	newLevel := 0
	var parentID *string
	if newParentID != nil && *newParentID != "" {
		if *newParentID == id {
			return nil, types.ErrInvalidParent
		}
		parent, err := c.GetByID(*newParentID)
		if err != nil {
			return nil, err
		}
		if slices.Contains(parent.Path, id) {
			return nil, types.ErrInvalidParent
		}
		newPath = append(slices.Clone(parent.Path), parent.ID)
		newLevel = parent.Level + 1
		parentID = &parent.ID
	}

	descendants, err := c.GetDescendants(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = c.s.Tx(func(tx *sql.Tx) error {
		encoded, err := encodePath(newPath)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"UPDATE categories SET parent_id = ?, path = ?, level = ?, updated_at = ? WHERE id = ?",
			parentID, encoded, newLevel, encodeTime(now), id,
		)
		if err != nil {
			return fmt.Errorf("moving category %s: %w", id, err)
		}

		for _, desc := range descendants {
			// Rebuild the descendant path: the new prefix up to and
			// including the moved node, then the old suffix below it.
			idx := slices.Index(desc.Path, id)
			if idx < 0 {
				continue
			}
			rebuilt := append(slices.Clone(newPath), id)
			rebuilt = append(rebuilt, desc.Path[idx+1:]...)

			encoded, err := encodePath(rebuilt)
			if err != nil {
				return err
			}
			_, err = tx.Exec(
				"UPDATE categories SET path = ?, level = ? WHERE id = ?",
				encoded, len(rebuilt), desc.ID,
			)
			if err != nil {
				return fmt.Errorf("rewriting descendant %s: %w", desc.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cat.ParentID = parentID
	cat.Path = newPath
	cat.Level = newLevel
	cat.UpdatedAt = now
	return cat, nil
}

// query runs a SELECT over the category columns and hydrates the rows.
func (c *Categories) query(query string, args ...any) ([]types.Category, error) {
	db, err := c.s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return results, nil
}

// rowScanner abstracts sql.Row and sql.Rows for the hydration helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCategory converts a SQLite row into a *types.Category.
func scanCategory(row rowScanner) (*types.Category, error) {
	var (
		cat         types.Category
		description sql.NullString
		parentID    sql.NullString
		path        string
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(
		&cat.ID, &cat.Name, &description, &cat.Color, &parentID, &cat.IsFolder,
		&path, &cat.Level, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cat.Description = description.String
	if parentID.Valid {
		cat.ParentID = &parentID.String
	}
	if cat.Path, err = decodePath(path); err != nil {
		return nil, err
	}
	if cat.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if cat.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &cat, nil
}
