// Package ghost provides a client for the Ghost v0.1 admin API: token
// acquisition via the password and refresh grants, and the database export
// endpoint. It also owns the credential lifecycle — deciding per run whether
// to reuse, refresh, or newly acquire credentials.
package ghost

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, ghost.ErrUnauthorized) to check.
var (
	ErrBadRequest   = errors.New("ghost: bad request")
	ErrUnauthorized = errors.New("ghost: unauthorized")
	ErrForbidden    = errors.New("ghost: forbidden")
	ErrNotFound     = errors.New("ghost: not found")
	ErrServerError  = errors.New("ghost: server error")
)

// APIError wraps a sentinel error with the HTTP status code and the API
// error message body for debugging.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ghost: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for codes without a dedicated sentinel.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
