package types

import "time"

// Item is an inventory entry. It belongs to exactly one category at a time,
// referenced weakly by ID: deleting the category does not delete or retarget
// the item.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   string    `json:"categoryId"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	PurchaseDate string    `json:"purchaseDate"`
	Description  string    `json:"description,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Value returns the total value of the entry (quantity times unit price).
func (i Item) Value() float64 {
	return float64(i.Quantity) * i.Price
}

// ItemForm is the input for creating an item.
type ItemForm struct {
	Name         string  `json:"name" validate:"required"`
	CategoryID   string  `json:"categoryId" validate:"required"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	Price        float64 `json:"price" validate:"gte=0"`
	PurchaseDate string  `json:"purchaseDate" validate:"required"`
	Description  string  `json:"description,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Image        string  `json:"image,omitempty"`
}

// Validate checks the form against its field rules. Returns a
// *ValidationError (matching ErrValidation) on the first violation.
func (f ItemForm) Validate() error {
	return validateStruct(f)
}

// ItemPatch holds the partial fields of an item update. Nil fields are left
// unchanged.
type ItemPatch struct {
	Name         *string  `json:"name,omitempty"`
	CategoryID   *string  `json:"categoryId,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	PurchaseDate *string  `json:"purchaseDate,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Image        *string  `json:"image,omitempty"`
}

// Validate rejects patches that would blank out a required field or move a
// numeric field out of range.
func (p ItemPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return &ValidationError{Field: "Name", Reason: "required"}
	}
	if p.CategoryID != nil && *p.CategoryID == "" {
		return &ValidationError{Field: "CategoryID", Reason: "required"}
	}
	if p.PurchaseDate != nil && *p.PurchaseDate == "" {
		return &ValidationError{Field: "PurchaseDate", Reason: "required"}
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return &ValidationError{Field: "Quantity", Reason: "gte"}
	}
	if p.Price != nil && *p.Price < 0 {
		return &ValidationError{Field: "Price", Reason: "gte"}
	}
	return nil
}
