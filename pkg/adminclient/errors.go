package adminclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is any non-2xx answer from the admin API. Fields carries the
// per-field messages of a 422 so forms can show inline errors.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Display is the text shown to the operator. Server errors arrive with a
// wrapped-error chain in the message; only the innermost segment is useful
// on screen.
func (e *APIError) Display() string {
	if e.StatusCode >= http.StatusInternalServerError {
		parts := strings.Split(e.Message, ":")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return e.Message
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsValidation reports whether the error is a 422 with field messages.
func IsValidation(err error) (map[string]string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
		return apiErr.Fields, true
	}
	return nil, false
}
