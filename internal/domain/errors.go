package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and delivery.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
	ErrBackendUnreachable = errors.New("backend unreachable")
	ErrEndpointMissing    = errors.New("endpoint missing")
	ErrNotConfirmed       = errors.New("deletion not confirmed")
)

// BackendError describes a failed call to the content API.
// StatusCode is 0 when no response was received.
type BackendError struct {
	Op         string
	StatusCode int
	Message    string
	causes     []error
}

// NewBackendError builds a BackendError whose sentinel causes are derived from the status code.
func NewBackendError(op string, statusCode int, message string) *BackendError {
	e := &BackendError{Op: op, StatusCode: statusCode, Message: message}
	switch {
	case statusCode == 0:
		e.causes = []error{ErrBackendUnreachable}
	case statusCode == 404:
		e.causes = []error{ErrEndpointMissing, ErrNotFound}
	case statusCode == 401 || statusCode == 403:
		e.causes = []error{ErrUnauthorized}
	case statusCode == 400:
		e.causes = []error{ErrValidation}
	}
	return e
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: backend unreachable: %s", e.Op, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Unwrap exposes the sentinel causes to errors.Is.
func (e *BackendError) Unwrap() []error {
	return e.causes
}

// BackendMessage returns the message the backend sent with a client error, if any.
// Messages from 5xx responses and network failures are not meant for end users and are dropped.
func BackendMessage(err error) string {
	var be *BackendError
	if !errors.As(err, &be) {
		return ""
	}
	if be.StatusCode < 400 || be.StatusCode >= 500 {
		return ""
	}
	return be.Message
}

// BackendStatus returns the HTTP status carried by a BackendError, or 0.
func BackendStatus(err error) int {
	var be *BackendError
	if errors.As(err, &be) {
		return be.StatusCode
	}
	return 0
}
