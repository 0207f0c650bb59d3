package sensor

import (
	"context"
	"sync"
)

// MockSource is a mock MotionSource for testing.
type MockSource struct {
	mu sync.RWMutex

	running  bool
	onSample func(Sample)

	// Configurable behavior
	StartFunc func(ctx context.Context) error

	// Captured calls for assertions
	StartCalls int
	StopCalls  int
}

// NewMockSource creates a new mock motion source.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// Start implements MotionSource.
func (m *MockSource) Start(ctx context.Context) error {
	m.mu.Lock()
	m.StartCalls++
	fn := m.StartFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(ctx); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	return nil
}

// Stop implements MotionSource.
func (m *MockSource) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
	m.running = false
	return nil
}

// OnSample implements MotionSource.
func (m *MockSource) OnSample(fn func(Sample)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSample = fn
}

// Running reports whether the mock is started.
func (m *MockSource) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// SimulateSample triggers the OnSample callback.
// Samples while stopped are ignored, matching BridgeSource.
func (m *MockSource) SimulateSample(s Sample) {
	m.mu.RLock()
	running := m.running
	fn := m.onSample
	m.mu.RUnlock()
	if running && fn != nil {
		fn(s)
	}
}

// Ensure MockSource implements MotionSource.
var _ MotionSource = (*MockSource)(nil)
