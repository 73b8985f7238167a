package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("resource not found")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrValidation               = errors.New("validation failed")
	ErrConcurrencyConflict      = errors.New("concurrent update conflict")
	ErrComputationInconsistency = errors.New("computation inconsistency")
	ErrInvoiceNotFound          = fmt.Errorf("invoice %w", ErrNotFound)
	ErrPurchaseNotFound         = fmt.Errorf("purchase %w", ErrNotFound)
	ErrProductNotFound          = fmt.Errorf("product %w", ErrNotFound)
	ErrCustomerNotFound         = fmt.Errorf("customer %w", ErrNotFound)
	ErrDuplicateDocumentNumber  = errors.New("document number already exists for this tenant")
	ErrExportStorageDisabled    = errors.New("export archive storage is not configured")
	ErrMalformedRecord          = errors.New("stored ledger record could not be decoded")
)

// ValidationError describes a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InconsistencyError reports a violated arithmetic invariant. It is fatal to
// the request that produced it.
func InconsistencyError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrComputationInconsistency, fmt.Sprintf(format, args...))
}
