package alert

import (
	"log/slog"
	"sync"
)

// LogNotifier renders notifications to the structured log. It is the
// fallback on hosts without a notification daemon and the default for the
// sentinel CLI.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "alert.notifier")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(notification Notification) error {
	n.logger.Info("NOTIFICATION",
		"title", notification.Title,
		"body", notification.Body,
		"actions", len(notification.Actions),
	)
	return nil
}

// MockNotifier is a mock Notifier for testing.
type MockNotifier struct {
	mu sync.Mutex

	// Configurable behavior
	NotifyFunc func(n Notification) error

	// Captured calls for assertions
	Shown []Notification
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify implements Notifier.
func (m *MockNotifier) Notify(n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NotifyFunc != nil {
		if err := m.NotifyFunc(n); err != nil {
			return err
		}
	}
	m.Shown = append(m.Shown, n)
	return nil
}

// Count returns the number of notifications shown.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Shown)
}

// Ensure implementations satisfy Notifier.
var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*MockNotifier)(nil)
)
