package fieldservice

import (
	"errors"
	"fmt"
)

// Error categories reported by the external system.
const (
	KindAuth        = "auth"        // stored credentials rejected
	KindValidation  = "validation"  // request payload rejected
	KindUnavailable = "unavailable" // network failure, 5xx, timeout
)

// APIError is a categorized failure from the external field-service API.
type APIError struct {
	Kind       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fieldservice %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// IsAuth reports whether err is a credential rejection.
func IsAuth(err error) bool { return kindOf(err) == KindAuth }

// IsValidation reports whether err is a payload rejection.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

func kindOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
