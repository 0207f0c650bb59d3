package detection

import (
	"errors"
)

// Sentinel errors for the detection package.
//
// Everything here is non-fatal at the session level: a failing channel is
// recorded as a false status flag and surfaced as a Warning, never a fault
// that crosses the core boundary.
var (
	// ErrPermissionDenied indicates the user or host denied access to a
	// channel's underlying capability. The channel stays disabled for the
	// session and is not retried.
	ErrPermissionDenied = errors.New("detection: permission denied")

	// ErrUnavailable indicates the host lacks the capability entirely.
	ErrUnavailable = errors.New("detection: capability unavailable")

	// ErrSettingsRequired indicates Start was attempted without settings.
	// Nothing is started in that case.
	ErrSettingsRequired = errors.New("detection: settings required")

	// ErrAlreadyRunning indicates a channel Start while it is running.
	ErrAlreadyRunning = errors.New("detection: channel already running")
)

// IsPermissionDenied returns true if the error is a denial.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsUnavailable returns true if the error indicates a missing capability.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsSettingsRequired returns true if the error indicates a start attempt
// without usable settings.
func IsSettingsRequired(err error) bool {
	return errors.Is(err, ErrSettingsRequired)
}

// Warning is a non-fatal condition reported to the caller.
// Channel is empty for session-level conditions such as missing settings.
type Warning struct {
	Channel Kind
	Err     error
}

// String renders the warning for logs.
func (w Warning) String() string {
	if w.Channel == "" {
		return w.Err.Error()
	}
	return string(w.Channel) + ": " + w.Err.Error()
}
