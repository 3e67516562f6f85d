package common

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey carries the authenticated user's id through the request context.
const UserIDKey contextKey = "user_id"

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, NewValidationError("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, NewValidationError("%s has invalid format", fieldName)
	}

	return id, nil
}

// ValidateMobile validates an Indian 10-digit mobile number.
func ValidateMobile(mobile, fieldName string) error {
	if strings.TrimSpace(mobile) == "" {
		return NewValidationError("%s is required", fieldName)
	}
	if !mobilePattern.MatchString(mobile) {
		return NewValidationError("%s must be a 10-digit number", fieldName)
	}
	return nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError("%s is required", fieldName)
	}
	return nil
}

// ValidatePositiveAmount validates monetary inputs before any mutation.
func ValidatePositiveAmount(amount float64, fieldName string) error {
	if amount <= 0 {
		return NewValidationError("%s must be positive", fieldName)
	}
	return nil
}

// ValidateDateRange rejects inverted or unreasonably large ranges.
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return NewValidationError("end date cannot be before start date")
	}
	if endDate.Sub(startDate) > time.Hour*24*365*10 {
		return NewValidationError("date range cannot exceed 10 years")
	}
	return nil
}

// SafeString safely dereferences a string pointer.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 safely dereferences a float64 pointer.
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0.0
	}
	return *f
}

// GetUserIDFromContext extracts the authenticated user id from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// FormatINR renders an amount the way it appears on printed documents.
func FormatINR(amount float64) string {
	return fmt.Sprintf("Rs. %.2f", amount)
}
