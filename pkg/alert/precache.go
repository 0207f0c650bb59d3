package alert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultPrecachePaths is the minimal app shell warmed into the offline
// cache at registration time. The detection core never reads this cache; it
// exists so the host can surface the alert view without connectivity.
var DefaultPrecachePaths = []string{
	"/",
	"/index.html",
	"/manifest.json",
}

// Precache is a small offline cache of app-shell assets.
type Precache struct {
	baseURL string
	paths   []string
	client  *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	store map[string][]byte
}

// NewPrecache creates a precache rooted at baseURL.
// An empty paths slice uses DefaultPrecachePaths.
func NewPrecache(baseURL string, paths []string, logger *slog.Logger) *Precache {
	if len(paths) == 0 {
		paths = DefaultPrecachePaths
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Precache{
		baseURL: baseURL,
		paths:   paths,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With("component", "alert.precache"),
		store:   make(map[string][]byte),
	}
}

// Warm fetches every configured path into the cache.
// Individual fetch failures degrade the cache but do not abort the rest.
func (p *Precache) Warm(ctx context.Context) error {
	var failed int
	for _, path := range p.paths {
		if err := p.fetch(ctx, path); err != nil {
			p.logger.Warn("precache fetch failed", "path", path, "error", err)
			failed++
		}
	}
	if failed == len(p.paths) {
		return fmt.Errorf("alert: precache warm failed for all %d paths", failed)
	}
	p.logger.Info("precache warmed", "cached", len(p.paths)-failed, "failed", failed)
	return nil
}

// fetch retrieves one path into the store.
func (p *Precache) fetch(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alert: HTTP %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.store[path] = body
	p.mu.Unlock()
	return nil
}

// Get returns a cached asset.
func (p *Precache) Get(path string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.store[path]
	return data, ok
}

// Len returns the number of cached assets.
func (p *Precache) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.store)
}
