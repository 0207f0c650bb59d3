package speech

import (
	"errors"
	"fmt"
)

// Sentinel errors for the speech package.
var (
	// ErrMissingAPIKey indicates the API key was not provided.
	ErrMissingAPIKey = errors.New("speech: API key is required")

	// ErrNotAllowed indicates the service rejected the credentials or the
	// microphone grant was denied.
	ErrNotAllowed = errors.New("speech: access not allowed")

	// ErrNotStarted indicates the recognizer is not running.
	ErrNotStarted = errors.New("speech: recognizer not started")

	// ErrAlreadyStarted indicates the recognizer is already running.
	ErrAlreadyStarted = errors.New("speech: recognizer already started")

	// ErrConnectionFailed indicates the engine connection could not be
	// established.
	ErrConnectionFailed = errors.New("speech: connection failed")
)

// ConnectionError represents a WebSocket connection error.
type ConnectionError struct {
	// Reason describes why the connection failed.
	Reason string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("speech: connection error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("speech: connection error: %s", e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// IsNotAllowed returns true if the error indicates denied access.
func IsNotAllowed(err error) bool {
	return errors.Is(err, ErrNotAllowed)
}
