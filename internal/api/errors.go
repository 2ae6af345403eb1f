package api

import (
	"errors"
	"fmt"
	"net/http"
)

// MessageTooLarge is shown when the server rejects an upload with 413.
const MessageTooLarge = "File too large. Please choose a smaller image."

// APIError is returned for non-2xx responses and for 2xx responses whose
// envelope reports success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message returns a user-facing description of err: the server's message when
// it sent one, a fixed message for oversized uploads, and fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.Status == http.StatusRequestEntityTooLarge {
		return MessageTooLarge
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
