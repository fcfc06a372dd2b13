package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// HTTPError represents a non-2xx response returned by the users backend
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

// NewHTTPError creates a new HTTP error. An empty message falls back to the status text.
func NewHTTPError(method, url string, statusCode int, message string) *HTTPError {
	message = strings.TrimSpace(message)
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
	}
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus returns the upstream status code
func (e *HTTPError) HTTPStatus() int {
	return e.StatusCode
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// HTTPStatuser interface for errors that can provide an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// StatusOf returns the HTTP status carried by err, or 500 when it carries none.
func StatusOf(err error) int {
	var s HTTPStatuser
	if As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}
