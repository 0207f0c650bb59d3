// Package sensor provides device-motion sample sources for the detection core.
//
// A MotionSource delivers 3-axis acceleration samples through a callback.
// The production source (BridgeSource) is fed by a companion device streaming
// over WebSocket; a MockSource is provided for tests.
package sensor

import (
	"context"
	"errors"
)

// Sentinel errors for the sensor package.
var (
	// ErrNotAllowed indicates the motion access grant was denied.
	ErrNotAllowed = errors.New("sensor: motion access not allowed")

	// ErrUnavailable indicates no motion source exists on this host.
	ErrUnavailable = errors.New("sensor: motion source unavailable")
)

// Sample is one 3-axis acceleration reading. Absent axes are zero.
type Sample struct {
	X, Y, Z float64
}

// MotionSource delivers acceleration samples.
//
// Start performs the platform access grant where one is required; a denied
// grant is reported as ErrNotAllowed, never a panic.
type MotionSource interface {
	// Start attaches to the motion stream.
	Start(ctx context.Context) error

	// Stop detaches from the motion stream.
	// Safe to call multiple times.
	Stop() error

	// OnSample sets the callback invoked for every sample.
	OnSample(fn func(Sample))
}
