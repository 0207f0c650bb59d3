package sensor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// BridgeSource is a MotionSource fed by a companion device over the bridge.
//
// The bridge hub pushes every accelerometer sample it receives into Push;
// samples are only forwarded to the callback while the source is started.
type BridgeSource struct {
	logger *slog.Logger

	mu       sync.RWMutex
	running  bool
	onSample func(Sample)

	samplesSeen    atomic.Int64
	samplesDropped atomic.Int64
}

// NewBridgeSource creates a bridge-fed motion source.
func NewBridgeSource(logger *slog.Logger) *BridgeSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &BridgeSource{
		logger: logger.With("component", "sensor.bridge"),
	}
}

// Start implements MotionSource.
func (s *BridgeSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	return nil
}

// Stop implements MotionSource.
func (s *BridgeSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return nil
}

// OnSample implements MotionSource.
func (s *BridgeSource) OnSample(fn func(Sample)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSample = fn
}

// Push delivers one sample from the bridge.
// Samples arriving while the source is stopped are counted and dropped.
func (s *BridgeSource) Push(sample Sample) {
	s.samplesSeen.Add(1)

	s.mu.RLock()
	running := s.running
	fn := s.onSample
	s.mu.RUnlock()

	if !running || fn == nil {
		s.samplesDropped.Add(1)
		return
	}
	fn(sample)
}

// Stats returns (seen, dropped) sample counts.
func (s *BridgeSource) Stats() (int64, int64) {
	return s.samplesSeen.Load(), s.samplesDropped.Load()
}

// Ensure BridgeSource implements MotionSource.
var _ MotionSource = (*BridgeSource)(nil)
