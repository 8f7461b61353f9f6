package assignment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the category of every missing-row failure.
	ErrNotFound = errors.New("not found")
	// ErrConflict is the category of every business-rule rejection.
	ErrConflict = errors.New("conflict")

	ErrTenantNotFound       = fmt.Errorf("tenant %w", ErrNotFound)
	ErrPropertyNotFound     = fmt.Errorf("property %w", ErrNotFound)
	ErrPropertyUnavailable  = fmt.Errorf("property unavailable: %w", ErrConflict)
	ErrTenantHasActiveLease = fmt.Errorf("tenant already has an active lease: %w", ErrConflict)
)

// TransactionError reports a store failure while the assignment transaction
// was open or committing. Nothing was persisted. Retryable is set for
// serialization failures, deadlocks and lock timeouts.
type TransactionError struct {
	Op        string
	Err       error
	Retryable bool
}

func (e *TransactionError) Error() string {
	if e.Retryable {
		return fmt.Sprintf("assignment %s failed (retryable): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("assignment %s failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a TransactionError worth retrying.
func IsRetryable(err error) bool {
	var txErr *TransactionError
	return errors.As(err, &txErr) && txErr.Retryable
}
