package common

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced customer, invoice, loan or
// bhishi account does not resolve. Handlers map it to a 404.
var ErrNotFound = errors.New("not found")

// ValidationError represents a business-rule violation detected before
// any mutation happened. Handlers map it to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundf wraps ErrNotFound with a resource description so callers
// can still match with errors.Is.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// SecureErrorMessage hides storage-level details from the caller while
// keeping the failed operation identifiable.
func SecureErrorMessage(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || IsValidation(err) {
		return err
	}
	return fmt.Errorf("failed to %s: operation could not be completed", operation)
}
