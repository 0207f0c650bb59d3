package speech

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Recognizer for testing.
type Mock struct {
	mu sync.RWMutex

	// State
	available bool
	running   bool

	// Callbacks
	onTranscript func(text string, isFinal bool)
	onEnd        func()
	onError      func(err error)

	// Configurable behavior
	StartFunc func(ctx context.Context) error
	StopFunc  func() error

	// Captured calls for assertions
	StartCalls int
	StopCalls  int
	AudioSent  [][]byte
}

// NewMock creates a new Mock recognizer. It reports available by default.
func NewMock() *Mock {
	return &Mock{available: true}
}

// SetAvailable controls what Available reports.
func (m *Mock) SetAvailable(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = v
}

// Available implements Recognizer.
func (m *Mock) Available() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.available
}

// Start implements Recognizer.
func (m *Mock) Start(ctx context.Context) error {
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
	if m.running {
		return ErrAlreadyStarted
	}
	m.running = true
	return nil
}

// Stop implements Recognizer.
func (m *Mock) Stop() error {
	m.mu.Lock()
	m.StopCalls++
	fn := m.StopFunc
	m.mu.Unlock()

	if fn != nil {
		return fn()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	return nil
}

// SendAudio implements Recognizer.
func (m *Mock) SendAudio(pcm16 []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return ErrNotStarted
	}
	m.AudioSent = append(m.AudioSent, pcm16)
	return nil
}

// OnTranscript implements Recognizer.
func (m *Mock) OnTranscript(fn func(text string, isFinal bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTranscript = fn
}

// OnEnd implements Recognizer.
func (m *Mock) OnEnd(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = fn
}

// OnError implements Recognizer.
func (m *Mock) OnError(fn func(err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// Running reports whether the mock is currently started.
func (m *Mock) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Test helpers

// SimulateTranscript triggers the OnTranscript callback.
func (m *Mock) SimulateTranscript(text string, isFinal bool) {
	m.mu.RLock()
	fn := m.onTranscript
	m.mu.RUnlock()
	if fn != nil {
		fn(text, isFinal)
	}
}

// SimulateEnd triggers spontaneous engine termination.
func (m *Mock) SimulateEnd() {
	m.mu.Lock()
	m.running = false
	fn := m.onEnd
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SimulateError triggers the OnError callback.
func (m *Mock) SimulateError(err error) {
	m.mu.RLock()
	fn := m.onError
	m.mu.RUnlock()
	if fn != nil {
		fn(err)
	}
}

// Ensure Mock implements Recognizer.
var _ Recognizer = (*Mock)(nil)
