package detection

import (
	"context"
)

// Kind identifies one sensor modality.
type Kind string

const (
	KindVoice  Kind = "voice"
	KindMotion Kind = "motion"
	KindCamera Kind = "camera"
)

// Channel is one sensor modality's independent detection listener.
//
// A channel owns its underlying capability (recognition engine, motion
// stream, camera) for the duration of one session. Emergency signals and
// asynchronous warnings flow through the callbacks given at construction,
// never through return values after Start.
type Channel interface {
	// Kind returns the channel's modality.
	Kind() Kind

	// Start acquires the capability and begins listening.
	// Returns ErrUnavailable when the host lacks the capability and
	// ErrPermissionDenied when access was refused. Both are non-fatal
	// to the session.
	Start(ctx context.Context) error

	// Stop releases the capability. Idempotent; safe in any state.
	Stop()

	// Running reports whether the channel is currently listening.
	Running() bool
}
