package alert

import (
	"context"
	"log/slog"
	"sync"
)

// Registrar installs the background alert worker with the host.
// Registration is attempted once per process lifetime; a failed attempt is
// logged as a warning and never blocks detection. The registration state is
// explicit rather than hidden module-level state so callers can inject and
// inspect it.
type Registrar struct {
	worker   *Worker
	precache *Precache
	logger   *slog.Logger

	mu         sync.Mutex
	registered bool
	cancel     context.CancelFunc
}

// NewRegistrar creates a registrar for the given worker.
// precache may be nil when the host has no offline cache.
func NewRegistrar(worker *Worker, precache *Precache, logger *slog.Logger) *Registrar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registrar{
		worker:   worker,
		precache: precache,
		logger:   logger.With("component", "alert.registrar"),
	}
}

// RegisterOnce starts the worker context and warms the offline cache.
// The second and later calls are no-ops returning ErrAlreadyRegistered.
func (r *Registrar) RegisterOnce(ctx context.Context) error {
	r.mu.Lock()
	if r.registered {
		r.mu.Unlock()
		return ErrAlreadyRegistered
	}
	// One attempt per process, even if pieces of it degrade below.
	r.registered = true

	workerCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	go r.worker.Run(workerCtx)
	r.logger.Info("alert worker registered")

	if r.precache != nil {
		if err := r.precache.Warm(ctx); err != nil {
			// Detection proceeds without the offline cache.
			r.logger.Warn("precache warm failed", "error", err)
		}
	}
	return nil
}

// Registered reports whether registration was attempted.
func (r *Registrar) Registered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered
}

// Shutdown stops the worker context.
func (r *Registrar) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Worker returns the registered worker for message posting.
func (r *Registrar) Worker() *Worker {
	return r.worker
}
