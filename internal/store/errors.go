package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"property-management/internal/database"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate")
	// ErrHasLeases indicates a property or tenant still has lease history.
	ErrHasLeases = errors.New("has leases")
	// ErrReferenced indicates other rows still point at the row being deleted.
	ErrReferenced = errors.New("referenced by other records")
)

// wrapErr maps driver and gorm errors onto the store sentinels.
func wrapErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case database.IsDuplicate(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrReferenced)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
