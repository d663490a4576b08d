package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNetwork      = errors.New("network error")
	ErrParse        = errors.New("parse error")
	ErrServer       = errors.New("server error")
)

// FieldError describes a validation error for a single input location,
// e.g. ["body", "title"] or ["query", "limit"].
type FieldError struct {
	Location []string `json:"loc"`
	Message  string   `json:"msg"`
	Type     string   `json:"type"`
}

// Path joins the location segments with dots.
func (f FieldError) Path() string {
	return strings.Join(f.Location, ".")
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Path(), e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether any field error is located exactly at loc.
func (e *ValidationError) Has(loc ...string) bool {
	want := strings.Join(loc, ".")
	for _, f := range e.Errors {
		if f.Path() == want {
			return true
		}
	}
	return false
}

// NewValidationError creates a ValidationError for a single location.
func NewValidationError(location []string, message, errType string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Location: location, Message: message, Type: errType}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NetworkError reports that a request never produced a response:
// DNS failure, connection reset, timeout or cancellation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// ParseError reports a response body that did not match its declared shape.
type ParseError struct {
	Op     string
	Status int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s (status %d): %v", e.Op, e.Status, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// APIError is a well-formed refusal from the remote service.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	case len(e.Fields) > 0:
		return fmt.Sprintf("api: status %d: %s", e.Status, (&ValidationError{Errors: e.Fields}).Error())
	default:
		return fmt.Sprintf("api: status %d", e.Status)
	}
}

// Unwrap exposes the sentinel matching the status code and, when the
// service returned field errors, a *ValidationError for errors.As.
func (e *APIError) Unwrap() []error {
	errs := []error{KindForStatus(e.Status)}
	if len(e.Fields) > 0 {
		errs = append(errs, &ValidationError{Errors: e.Fields})
	}
	return errs
}

// KindForStatus maps an HTTP status to a sentinel error.
// 409 is treated as forbidden: the service answers rejected joins with it.
func KindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden, http.StatusConflict:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}
