package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	ErrStoreClosed    = errors.New("store is closed")
	ErrStorageBlocked = errors.New("storage is blocked by another open handle")
)

// Repository operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid record ID")
	ErrInvalidParent = errors.New("invalid parent category")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrValidation    = errors.New("validation failed")
)

// Bulk transfer and migration errors.
var (
	ErrVersionConflict  = errors.New("import document is from a newer schema version")
	ErrMigrationFailure = errors.New("migration failed")
)

// ValidationError reports a required-field or numeric-range violation on
// create/update input. It matches ErrValidation via errors.Is.
type ValidationError struct {
	Field  string // struct field that failed, e.g. "Name"
	Reason string // violated rule, e.g. "required" or "gte"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MigrationError reports a failed forward or backward migration step.
// It matches ErrMigrationFailure via errors.Is and unwraps to the cause.
type MigrationError struct {
	Version int
	Name    string
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %d (%s): %v", e.Version, e.Name, e.Err)
}

// Is reports whether target is ErrMigrationFailure.
func (e *MigrationError) Is(target error) bool {
	return target == ErrMigrationFailure
}

// Unwrap returns the underlying cause.
func (e *MigrationError) Unwrap() error {
	return e.Err
}
