package types

import "time"

// Category is a node in the category tree. The tree is an adjacency
// structure (ParentID) with a denormalized materialized path: Path holds the
// ancestor IDs root-to-parent (excluding the category itself) and Level is
// the depth, so len(Path) == Level always, and a root category has
// ParentID == nil, Level == 0 and an empty Path.
//
// Path and Level are computed once at creation and are only rewritten by
// Move, which recomputes them for the whole affected subtree.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	ParentID    *string   `json:"parentId"`
	IsFolder    bool      `json:"isFolder"`
	Path        []string  `json:"path"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryForm is the input for creating a category. IsFolder defaults to
// false: folder categories organize subcategories, leaf categories hold
// items directly.
type CategoryForm struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color" validate:"required"`
	ParentID    *string `json:"parentId,omitempty"`
	IsFolder    bool    `json:"isFolder"`
}

// Validate checks the form against its field rules. Returns a
// *ValidationError (matching ErrValidation) on the first violation.
func (f CategoryForm) Validate() error {
	return validateStruct(f)
}

// CategoryPatch holds the partial fields of a category update. Nil fields
// are left unchanged. Tree position (ParentID, Path, Level) is never patched;
// reparenting goes through the dedicated Move operation.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsFolder    *bool   `json:"isFolder,omitempty"`
}

// Validate rejects patches that would blank out a required field.
func (p CategoryPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return &ValidationError{Field: "Name", Reason: "required"}
	}
	if p.Color != nil && *p.Color == "" {
		return &ValidationError{Field: "Color", Reason: "required"}
	}
	return nil
}
