// Package capture provides camera stream acquisition for the detection core.
//
// The detection core holds a camera open as a scoped resource so that a
// future vision pipeline has a live stream; no frames are analyzed here.
package capture

import (
	"context"
	"errors"
)

// Sentinel errors for the capture package.
var (
	// ErrNotAllowed indicates camera access was denied.
	ErrNotAllowed = errors.New("capture: camera access not allowed")

	// ErrUnavailable indicates no camera device exists on this host.
	ErrUnavailable = errors.New("capture: camera unavailable")

	// ErrAlreadyOpen indicates the camera is already acquired.
	ErrAlreadyOpen = errors.New("capture: camera already open")
)

// Camera is an acquirable video capture resource.
type Camera interface {
	// Open acquires the capture stream.
	Open(ctx context.Context) error

	// Close releases the stream and all underlying tracks.
	// Safe to call multiple times.
	Close() error

	// Opened reports whether the stream is currently held.
	Opened() bool
}
