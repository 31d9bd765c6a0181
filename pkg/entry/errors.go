package entry

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation error")
var ErrNotAvailable = errors.New("ledger store not available")
var ErrEntryNotFound = errors.New("entry not found")

// ValidationError describes a malformed field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
