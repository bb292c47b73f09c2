// Unit tests for the category repository: tree invariants, CRUD, and
// hierarchical queries.
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omidnw/room-organizer/pkg/types"
)

// mustCreateCategory is a shorthand for tests that need a category in place.
func mustCreateCategory(t *testing.T, c *Categories, form types.CategoryForm) *types.Category {
	t.Helper()
	cat, err := c.Create(form)
	require.NoError(t, err)
	return cat
}

func TestCategoryCreate(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, c *Categories)
	}{
		{
			name: "root category has empty path, level 0, nil parent",
			check: func(t *testing.T, c *Categories) {
				cat := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
				assert.NotEmpty(t, cat.ID)
				assert.Nil(t, cat.ParentID)
				assert.Empty(t, cat.Path)
				assert.Equal(t, 0, cat.Level)
				assert.True(t, cat.IsFolder)
				assert.Len(t, cat.Path, cat.Level)
			},
		},
		{
			name: "child path is parent path plus parent id",
			check: func(t *testing.T, c *Categories) {
				parent := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
				child := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &parent.ID})

				assert.Equal(t, []string{parent.ID}, child.Path)
				assert.Equal(t, parent.Level+1, child.Level)
				require.NotNil(t, child.ParentID)
				assert.Equal(t, parent.ID, *child.ParentID)

				grandchild := mustCreateCategory(t, c, types.CategoryForm{Name: "Small Boxes", Color: "#EC4899", ParentID: &child.ID})
				assert.Equal(t, []string{parent.ID, child.ID}, grandchild.Path)
				assert.Equal(t, 2, grandchild.Level)
				assert.Len(t, grandchild.Path, grandchild.Level)
			},
		},
		{
			name: "missing parent fails with ErrNotFound, no orphan created",
			check: func(t *testing.T, c *Categories) {
				ghost := "no-such-parent"
				_, err := c.Create(types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &ghost})
				assert.ErrorIs(t, err, types.ErrNotFound)

				cats, err := c.GetAll()
				require.NoError(t, err)
				assert.Empty(t, cats)
			},
		},
		{
			name: "empty name fails validation before any write",
			check: func(t *testing.T, c *Categories) {
				_, err := c.Create(types.CategoryForm{Color: "#3B82F6"})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
		{
			name: "empty color fails validation",
			check: func(t *testing.T, c *Categories) {
				_, err := c.Create(types.CategoryForm{Name: "Storage"})
				assert.ErrorIs(t, err, types.ErrValidation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewCategories(newTestStore(t)))
		})
	}
}

func TestCategoryUpdate(t *testing.T) {
	t.Run("merges partial fields and refreshes updatedAt", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		cat := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6"})

		newName := "Big Storage"
		updated, err := c.Update(cat.ID, types.CategoryPatch{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Big Storage", updated.Name)
		assert.Equal(t, "#3B82F6", updated.Color)
		assert.False(t, updated.UpdatedAt.Before(cat.UpdatedAt))
	})

	t.Run("preserves path and level", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		parent := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		child := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &parent.ID})

		folder := true
		updated, err := c.Update(child.ID, types.CategoryPatch{IsFolder: &folder})
		require.NoError(t, err)
		assert.Equal(t, child.Path, updated.Path)
		assert.Equal(t, child.Level, updated.Level)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		name := "x"
		_, err := c.Update("missing", types.CategoryPatch{Name: &name})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("blanking a required field fails validation", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		cat := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6"})

		empty := ""
		_, err := c.Update(cat.ID, types.CategoryPatch{Name: &empty})
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestCategoryDelete(t *testing.T) {
	t.Run("hard delete, unknown id returns ErrNotFound", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		cat := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6"})

		require.NoError(t, c.Delete(cat.ID))
		_, err := c.GetByID(cat.ID)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.ErrorIs(t, c.Delete(cat.ID), types.ErrNotFound)
	})

	t.Run("does not cascade to children", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		parent := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		child := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &parent.ID})

		require.NoError(t, c.Delete(parent.ID))

		got, err := c.GetByID(child.ID)
		require.NoError(t, err)
		// The child keeps its now-dangling parent reference.
		require.NotNil(t, got.ParentID)
		assert.Equal(t, parent.ID, *got.ParentID)
	})
}

func TestCategoryQueries(t *testing.T) {
	t.Run("getAll sorts by name", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		mustCreateCategory(t, c, types.CategoryForm{Name: "Wardrobe", Color: "#F59E0B"})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Attic", Color: "#8B5CF6"})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Garage", Color: "#10B981"})

		cats, err := c.GetAll()
		require.NoError(t, err)
		require.Len(t, cats, 3)
		assert.Equal(t, "Attic", cats[0].Name)
		assert.Equal(t, "Garage", cats[1].Name)
		assert.Equal(t, "Wardrobe", cats[2].Name)
	})

	t.Run("search matches name and description case-insensitively", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		mustCreateCategory(t, c, types.CategoryForm{Name: "Storage Boxes", Color: "#F97316"})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Wardrobe", Color: "#F59E0B"})

		got, err := c.Search("box", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Storage Boxes", got[0].Name)

		got, err = c.Search("BOX", nil)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		mustCreateCategory(t, c, types.CategoryForm{Name: "Shelf", Color: "#14B8A6", Description: "boxes live here too"})
		got, err = c.Search("box", nil)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("search scoped to a direct parent", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		parent := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Storage Boxes", Color: "#F97316", ParentID: &parent.ID})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Box Room", Color: "#EC4899"})

		got, err := c.Search("box", &parent.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Storage Boxes", got[0].Name)
	})

	t.Run("getChildren returns one level only", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		parent := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		child := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &parent.ID})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Small Boxes", Color: "#EC4899", ParentID: &child.ID})

		children, err := c.GetChildren(&parent.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, child.ID, children[0].ID)

		roots, err := c.GetChildren(nil)
		require.NoError(t, err)
		require.Len(t, roots, 1)
		assert.Equal(t, parent.ID, roots[0].ID)
	})

	t.Run("getPath returns ancestors root-to-parent", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		root := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		mid := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &root.ID})
		leaf := mustCreateCategory(t, c, types.CategoryForm{Name: "Small Boxes", Color: "#EC4899", ParentID: &mid.ID})

		breadcrumbs, err := c.GetPath(leaf.ID)
		require.NoError(t, err)
		require.Len(t, breadcrumbs, leaf.Level)
		assert.Equal(t, root.ID, breadcrumbs[0].ID)
		assert.Equal(t, mid.ID, breadcrumbs[1].ID)
	})

	t.Run("getPath tolerates dangling ancestor ids", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		root := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		mid := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &root.ID})
		leaf := mustCreateCategory(t, c, types.CategoryForm{Name: "Small Boxes", Color: "#EC4899", ParentID: &mid.ID})

		require.NoError(t, c.Delete(mid.ID))

		breadcrumbs, err := c.GetPath(leaf.ID)
		require.NoError(t, err)
		require.Len(t, breadcrumbs, 1)
		assert.Equal(t, root.ID, breadcrumbs[0].ID)
	})

	t.Run("getDescendants returns the full subtree, never the node itself", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		root := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		mid := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &root.ID})
		leaf := mustCreateCategory(t, c, types.CategoryForm{Name: "Small Boxes", Color: "#EC4899", ParentID: &mid.ID})
		mustCreateCategory(t, c, types.CategoryForm{Name: "Wardrobe", Color: "#F59E0B"})

		descendants, err := c.GetDescendants(root.ID)
		require.NoError(t, err)
		require.Len(t, descendants, 2)
		ids := []string{descendants[0].ID, descendants[1].ID}
		assert.Contains(t, ids, mid.ID)
		assert.Contains(t, ids, leaf.ID)
		assert.NotContains(t, ids, root.ID)
	})

	t.Run("getRecent sorts by updatedAt desc with id asc tiebreak", func(t *testing.T) {
		s := newTestStore(t)
		c := NewCategories(s)
		first := mustCreateCategory(t, c, types.CategoryForm{Name: "A", Color: "#111111"})
		second := mustCreateCategory(t, c, types.CategoryForm{Name: "B", Color: "#222222"})
		third := mustCreateCategory(t, c, types.CategoryForm{Name: "C", Color: "#333333"})

		// Pin identical timestamps on two records to exercise the tiebreak.
		db, err := s.handle()
		require.NoError(t, err)
		pinned := encodeTime(time.Now().Add(time.Hour))
		_, err = db.Exec("UPDATE categories SET updated_at = ? WHERE id IN (?, ?)", pinned, first.ID, second.ID)
		require.NoError(t, err)

		recent, err := c.GetRecent(2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, min(first.ID, second.ID), recent[0].ID)
		assert.Equal(t, max(first.ID, second.ID), recent[1].ID)
		assert.NotEqual(t, third.ID, recent[0].ID)
	})

	t.Run("getRecent rejects a non-positive limit", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		_, err := c.GetRecent(0)
		assert.ErrorIs(t, err, types.ErrInvalidLimit)
	})
}

func TestCategoryMove(t *testing.T) {
	t.Run("recomputes path and level for the node and its subtree", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		oldRoot := mustCreateCategory(t, c, types.CategoryForm{Name: "Old", Color: "#111111", IsFolder: true})
		newRoot := mustCreateCategory(t, c, types.CategoryForm{Name: "New", Color: "#222222", IsFolder: true})
		moved := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &oldRoot.ID})
		leaf := mustCreateCategory(t, c, types.CategoryForm{Name: "Small Boxes", Color: "#EC4899", ParentID: &moved.ID})

		got, err := c.Move(moved.ID, &newRoot.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{newRoot.ID}, got.Path)
		assert.Equal(t, 1, got.Level)

		gotLeaf, err := c.GetByID(leaf.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{newRoot.ID, moved.ID}, gotLeaf.Path)
		assert.Equal(t, 2, gotLeaf.Level)

		descendants, err := c.GetDescendants(newRoot.ID)
		require.NoError(t, err)
		assert.Len(t, descendants, 2)
		descendants, err = c.GetDescendants(oldRoot.ID)
		require.NoError(t, err)
		assert.Empty(t, descendants)
	})

	t.Run("move to root clears parent and path", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		root := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		child := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &root.ID})

		got, err := c.Move(child.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
		assert.Empty(t, got.Path)
		assert.Equal(t, 0, got.Level)
	})

	t.Run("rejects moving under itself or a descendant", func(t *testing.T) {
		c := NewCategories(newTestStore(t))
		root := mustCreateCategory(t, c, types.CategoryForm{Name: "Storage", Color: "#3B82F6", IsFolder: true})
		child := mustCreateCategory(t, c, types.CategoryForm{Name: "Boxes", Color: "#F97316", ParentID: &root.ID})

		_, err := c.Move(root.ID, &root.ID)
		assert.ErrorIs(t, err, types.ErrInvalidParent)
		_, err = c.Move(root.ID, &child.ID)
		assert.ErrorIs(t, err, types.ErrInvalidParent)
	})
}
