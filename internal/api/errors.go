package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired indicates the refresh token was rejected or
	// missing. The stored session has been cleared; the user must log
	// in again. No request is retried past this point.
	ErrSessionExpired = errors.New("session expired, login required")

	// ErrNotLoggedIn indicates no session is stored at all. Produced by
	// command preflight, not by the transport.
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is a non-2xx response from the board API.
type APIError struct {
	Status int
	Detail string // server-supplied detail text, may be empty
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// IsForbidden reports whether err is a 403 APIError.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

// Detail returns server-supplied detail text when err carries one, else
// the fallback message.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
