// Package api defines the workout log API contract shared by its callers and implementations.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is wrapped when a successful response does not decode into the expected record
var ErrMalformedResponse = errors.New("malformed response")

// Error is returned for non-2xx responses. Message is the server's detail
// when it sent one, otherwise "HTTP <status>".
type Error struct {
	StatusCode int
	Message    string
}

func NewError(statusCode int, message string) *Error {
	if message == "" {
		message = StatusMessage(statusCode)
	}
	return &Error{
		StatusCode: statusCode,
		Message:    message,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func StatusMessage(statusCode int) string {
	return fmt.Sprintf("HTTP %d", statusCode)
}

// IsNotFound reports whether err carries a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
