package alert

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Worker consumes worker messages and renders notifications.
// Each EMERGENCY_TRIGGERED message is displayed at most once; everything
// else is ignored.
type Worker struct {
	notifier Notifier
	logger   *slog.Logger
	inbox    chan Message

	displayed atomic.Int64
	dropped   atomic.Int64
}

// NewWorker creates a worker delivering through the given notifier.
func NewWorker(notifier Notifier, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		notifier: notifier,
		logger:   logger.With("component", "alert.worker"),
		inbox:    make(chan Message, 16),
	}
}

// Post queues a message for the worker. Fire-and-forget: a full inbox drops
// the message rather than blocking the sender.
func (w *Worker) Post(msg Message) {
	select {
	case w.inbox <- msg:
	default:
		w.dropped.Add(1)
		w.logger.Warn("inbox full, message dropped", "type", msg.Type)
	}
}

// Run consumes messages until the context is cancelled.
// Call in a goroutine.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.inbox:
			w.handle(msg)
		}
	}
}

// handle renders one message.
func (w *Worker) handle(msg Message) {
	if msg.Type != TypeEmergencyTriggered {
		w.logger.Debug("ignoring unknown worker message", "type", msg.Type)
		return
	}

	n := BuildNotification(msg.Payload.ContactCount)
	if err := w.notifier.Notify(n); err != nil {
		w.logger.Warn("notification failed", "error", err)
		return
	}
	w.displayed.Add(1)
	w.logger.Info("emergency notification shown", "contacts", msg.Payload.ContactCount)
}

// Stats returns (displayed, dropped) counters.
func (w *Worker) Stats() (int64, int64) {
	return w.displayed.Load(), w.dropped.Load()
}
