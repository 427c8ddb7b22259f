package apiclient

import (
	"fmt"
)

// APIError represents an error envelope returned by the API.
type APIError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"error_type"`
	Message    string `json:"error_message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return e.Message
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.Type == "AuthenticationError"
}

// IsNotFound returns true if this is a not found error.
func (e *APIError) IsNotFound() bool {
	return e.Type == "NotFoundError"
}

// IsValidationError returns true if this is a validation error.
func (e *APIError) IsValidationError() bool {
	return e.Type == "ValidationError"
}
