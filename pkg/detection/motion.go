package detection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/sensor"
)

// DefaultMotionDebounce is the minimum gap between motion triggers.
// It keeps one continuous shake from flooding the emergency callback.
const DefaultMotionDebounce = 2 * time.Second

// MotionChannel watches acceleration samples for a shake exceeding the
// configured threshold.
type MotionChannel struct {
	src       sensor.MotionSource
	threshold float64
	emit      func()
	logger    *slog.Logger

	// Debounce is the suppression window between triggers. Set before Start.
	Debounce time.Duration

	// now is injectable for tests.
	now func() time.Time

	mu          sync.Mutex
	active      bool
	triggered   bool
	lastTrigger time.Time
}

// NewMotionChannel creates a motion channel firing when sample magnitude
// exceeds threshold. src may be nil when the host has no motion source.
func NewMotionChannel(src sensor.MotionSource, threshold float64, emit func(), logger *slog.Logger) *MotionChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &MotionChannel{
		src:       src,
		threshold: threshold,
		emit:      emit,
		logger:    logger.With("channel", KindMotion),
		Debounce:  DefaultMotionDebounce,
		now:       time.Now,
	}
}

// SetClock replaces the time source. For tests.
func (c *MotionChannel) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Kind implements Channel.
func (c *MotionChannel) Kind() Kind { return KindMotion }

// Start implements Channel.
func (c *MotionChannel) Start(ctx context.Context) error {
	if c.src == nil {
		return fmt.Errorf("motion: no motion source: %w", ErrUnavailable)
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.mu.Unlock()

	c.src.OnSample(c.handleSample)

	if err := c.src.Start(ctx); err != nil {
		switch {
		case errors.Is(err, sensor.ErrNotAllowed):
			return fmt.Errorf("motion: %v: %w", err, ErrPermissionDenied)
		case errors.Is(err, sensor.ErrUnavailable):
			return fmt.Errorf("motion: %v: %w", err, ErrUnavailable)
		default:
			return fmt.Errorf("motion: attach source: %w", err)
		}
	}

	c.mu.Lock()
	c.active = true
	c.triggered = false
	c.mu.Unlock()

	c.logger.Debug("watching acceleration", "threshold", c.threshold)
	return nil
}

// Stop implements Channel.
func (c *MotionChannel) Stop() {
	c.mu.Lock()
	wasActive := c.active
	c.active = false
	c.mu.Unlock()

	if wasActive && c.src != nil {
		_ = c.src.Stop()
	}
}

// Running implements Channel.
func (c *MotionChannel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// handleSample applies the magnitude threshold and the debounce window.
func (c *MotionChannel) handleSample(s sensor.Sample) {
	mag := math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)

	c.mu.Lock()
	if !c.active || mag <= c.threshold {
		c.mu.Unlock()
		return
	}
	now := c.now()
	if c.triggered && now.Sub(c.lastTrigger) < c.Debounce {
		c.mu.Unlock()
		return
	}
	c.triggered = true
	c.lastTrigger = now
	c.mu.Unlock()

	c.logger.Info("shake detected", "magnitude", mag, "threshold", c.threshold)
	c.emit()
}

// Ensure MotionChannel implements Channel.
var _ Channel = (*MotionChannel)(nil)
