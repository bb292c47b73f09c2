// Item repository: CRUD plus category-scoped queries with subtree inclusion,
// in-memory pagination, text search, and recency.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omidnw/room-organizer/pkg/types"
)

const itemColumns = "id, name, category_id, quantity, price, purchase_date, description, notes, image, created_at, updated_at"

// ListOptions control pagination and subtree inclusion on item queries.
// Pagination applies as a final step over the assembled candidate list, not
// at index level: offset = (Page-1)*Limit. Page and Limit must both be set
// for pagination to take effect.
type ListOptions struct {
	Page                 int
	Limit                int
	IncludeSubcategories bool
}

// Items provides access to the items record store. Subtree queries resolve
// the descendant set through the category repository.
type Items struct {
	s          *Store
	categories *Categories
}

// NewItems returns an item repository over the given store.
func NewItems(s *Store, categories *Categories) *Items {
	return &Items{s: s, categories: categories}
}

// Create validates the form and inserts the new item. The referenced
// category must exist at creation time; afterwards the reference is weak.
func (i *Items) Create(form types.ItemForm) (*types.Item, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if _, err := i.categories.GetByID(form.CategoryID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("resolving category %s: %w", form.CategoryID, types.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	item := &types.Item{
		ID:           newID(),
		Name:         form.Name,
		CategoryID:   form.CategoryID,
		Quantity:     form.Quantity,
		Price:        form.Price,
		PurchaseDate: form.PurchaseDate,
		Description:  form.Description,
		Notes:        form.Notes,
		Image:        form.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	db, err := i.s.handle()
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO items ("+itemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.Name, item.CategoryID, item.Quantity, item.Price, item.PurchaseDate,
		item.Description, item.Notes, item.Image, encodeTime(item.CreatedAt), encodeTime(item.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	return item, nil
}

// Update merges the patch into the stored item and refreshes updatedAt.
// Retargeting to a different category requires that category to exist.
// Returns ErrNotFound if the ID does not exist.
func (i *Items) Update(id string, patch types.ItemPatch) (*types.Item, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	item, err := i.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil && *patch.CategoryID != item.CategoryID {
		if _, err := i.categories.GetByID(*patch.CategoryID); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, fmt.Errorf("resolving category %s: %w", *patch.CategoryID, types.ErrNotFound)
			}
			return nil, err
		}
		item.CategoryID = *patch.CategoryID
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.PurchaseDate != nil {
		item.PurchaseDate = *patch.PurchaseDate
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	item.UpdatedAt = time.Now()

	db, err := i.s.handle()
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		`UPDATE items SET name = ?, category_id = ?, quantity = ?, price = ?, purchase_date = ?,
		 description = ?, notes = ?, image = ?, updated_at = ? WHERE id = ?`,
		item.Name, item.CategoryID, item.Quantity, item.Price, item.PurchaseDate,
		item.Description, item.Notes, item.Image, encodeTime(item.UpdatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item %s: %w", id, err)
	}
	return item, nil
}

// Delete removes the item. Returns ErrNotFound if the ID does not exist.
func (i *Items) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := i.s.handle()
	if err != nil {
		return err
	}
	res, err := db.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// GetByID retrieves an item. Returns ErrNotFound if the ID does not exist.
// The stored categoryId is returned as-is even when it dangles.
func (i *Items) GetByID(id string) (*types.Item, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := i.s.handle()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = ?", id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return item, nil
}

// GetByCategory returns the items of a category. With IncludeSubcategories
// the candidate set is the union of the category and its full descendant set
// (resolved through the category repository); pagination slices that
// assembled list.
func (i *Items) GetByCategory(categoryID string, opts ListOptions) ([]types.Item, error) {
	categoryIDs := []string{categoryID}
	if opts.IncludeSubcategories {
		descendants, err := i.categories.GetDescendants(categoryID)
		if err != nil {
			return nil, err
		}
		for _, desc := range descendants {
			categoryIDs = append(categoryIDs, desc.ID)
		}
	}

	items := []types.Item{}
	for _, catID := range categoryIDs {
		batch, err := i.query(
			"SELECT "+itemColumns+" FROM items WHERE category_id = ? ORDER BY id ASC",
			catID,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return paginate(items, opts.Page, opts.Limit), nil
}

// GetAll returns every item in by-name index order, optionally paginated.
func (i *Items) GetAll(opts ListOptions) ([]types.Item, error) {
	items, err := i.query("SELECT " + itemColumns + " FROM items ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, err
	}
	return paginate(items, opts.Page, opts.Limit), nil
}

// Search matches the query case-insensitively as a substring of name or
// description across all items.
func (i *Items) Search(query string) ([]types.Item, error) {
	items, err := i.query("SELECT " + itemColumns + " FROM items ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []types.Item{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			results = append(results, item)
		}
	}
	return results, nil
}

// SearchInCategory matches the query within one category, adding notes to
// the searched fields.
func (i *Items) SearchInCategory(categoryID, query string, opts ListOptions) ([]types.Item, error) {
	items, err := i.query(
		"SELECT "+itemColumns+" FROM items WHERE category_id = ? ORDER BY id ASC",
		categoryID,
	)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []types.Item{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) ||
			strings.Contains(strings.ToLower(item.Notes), needle) {
			results = append(results, item)
		}
	}
	return paginate(results, opts.Page, opts.Limit), nil
}

// GetRecent returns up to limit items ordered by updatedAt descending, ties
// broken by ID ascending for determinism.
func (i *Items) GetRecent(limit int) ([]types.Item, error) {
	if limit <= 0 {
		return nil, types.ErrInvalidLimit
	}
	return i.query(
		"SELECT "+itemColumns+" FROM items ORDER BY updated_at DESC, id ASC LIMIT ?",
		limit,
	)
}

// CountByCategory returns the number of items directly in one category.
func (i *Items) CountByCategory(categoryID string) (int, error) {
	db, err := i.s.handle()
	if err != nil {
		return 0, err
	}
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM items WHERE category_id = ?", categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting items in %s: %w", categoryID, err)
	}
	return count, nil
}

// SubtreeValue returns the total value (quantity times price, summed) of all
// items in the category and its full descendant set.
func (i *Items) SubtreeValue(categoryID string) (float64, error) {
	items, err := i.GetByCategory(categoryID, ListOptions{IncludeSubcategories: true})
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, item := range items {
		total += item.Value()
	}
	return total, nil
}

// paginate slices items to the requested page. Requests beyond the end
// return an empty slice; a short final page signals "no more" to callers.
func paginate(items []types.Item, page, limit int) []types.Item {
	if page <= 0 || limit <= 0 {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []types.Item{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

// query runs a SELECT over the item columns and hydrates the rows.
func (i *Items) query(query string, args ...any) ([]types.Item, error) {
	db, err := i.s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return results, nil
}

// scanItem converts a SQLite row into a *types.Item.
func scanItem(row rowScanner) (*types.Item, error) {
	var (
		item        types.Item
		description sql.NullString
		notes       sql.NullString
		image       sql.NullString
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.CategoryID, &item.Quantity, &item.Price,
		&item.PurchaseDate, &description, &notes, &image, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.Notes = notes.String
	item.Image = image.String
	if item.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
