package capture

import (
	"context"
	"sync"
)

// MockCamera is a mock Camera for testing.
type MockCamera struct {
	mu     sync.Mutex
	opened bool

	// Configurable behavior
	OpenFunc func(ctx context.Context) error

	// Captured calls for assertions
	OpenCalls  int
	CloseCalls int
}

// NewMockCamera creates a new mock camera.
func NewMockCamera() *MockCamera {
	return &MockCamera{}
}

// Open implements Camera.
func (m *MockCamera) Open(ctx context.Context) error {
	m.mu.Lock()
	m.OpenCalls++
	fn := m.OpenFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(ctx); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened {
		return ErrAlreadyOpen
	}
	m.opened = true
	return nil
}

// Close implements Camera.
func (m *MockCamera) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	m.opened = false
	return nil
}

// Opened implements Camera.
func (m *MockCamera) Opened() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// Ensure MockCamera implements Camera.
var _ Camera = (*MockCamera)(nil)
