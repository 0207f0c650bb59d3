package detection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/capture"
)

// CameraChannel acquires the front camera stream as a scoped resource and
// holds it for the session. It produces no emergency signals: frame analysis
// for blink and gesture patterns is a deliberate gap, and the channel only
// validates and holds camera access so a future vision pipeline has a live
// stream to attach to.
type CameraChannel struct {
	cam    capture.Camera
	logger *slog.Logger

	mu     sync.Mutex
	active bool
}

// NewCameraChannel creates a camera channel. cam may be nil when the host
// has no camera; Start then reports ErrUnavailable.
func NewCameraChannel(cam capture.Camera, logger *slog.Logger) *CameraChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &CameraChannel{
		cam:    cam,
		logger: logger.With("channel", KindCamera),
	}
}

// Kind implements Channel.
func (c *CameraChannel) Kind() Kind { return KindCamera }

// Start implements Channel.
func (c *CameraChannel) Start(ctx context.Context) error {
	if c.cam == nil {
		return fmt.Errorf("camera: no capture device: %w", ErrUnavailable)
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.mu.Unlock()

	if err := c.cam.Open(ctx); err != nil {
		switch {
		case errors.Is(err, capture.ErrNotAllowed):
			return fmt.Errorf("camera: %v: %w", err, ErrPermissionDenied)
		case errors.Is(err, capture.ErrUnavailable):
			return fmt.Errorf("camera: %v: %w", err, ErrUnavailable)
		default:
			return fmt.Errorf("camera: acquire stream: %w", err)
		}
	}

	c.mu.Lock()
	c.active = true
	c.mu.Unlock()

	c.logger.Debug("camera stream held")
	return nil
}

// Stop implements Channel. It releases all underlying tracks.
func (c *CameraChannel) Stop() {
	c.mu.Lock()
	wasActive := c.active
	c.active = false
	c.mu.Unlock()

	if wasActive && c.cam != nil {
		if err := c.cam.Close(); err != nil {
			c.logger.Warn("camera release failed", "error", err)
		}
	}
}

// Running implements Channel.
func (c *CameraChannel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Ensure CameraChannel implements Channel.
var _ Channel = (*CameraChannel)(nil)
