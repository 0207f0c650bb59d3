package detection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/speech"
)

// DefaultVoiceRestartDelay is the pause before restarting a recognition
// engine that terminated spontaneously.
const DefaultVoiceRestartDelay = 1 * time.Second

// VoiceChannel matches continuous transcription results against a keyword
// set. A qualifying result fires the emergency callback once; recognition
// keeps running after a trigger.
type VoiceChannel struct {
	rec      speech.Recognizer
	keywords []string
	emit     func()
	warn     func(error)
	logger   *slog.Logger

	// RestartDelay is the wait before restarting after spontaneous engine
	// termination. Set before Start.
	RestartDelay time.Duration

	mu           sync.Mutex
	ctx          context.Context
	active       bool
	denied       bool
	restartTimer *time.Timer
}

// NewVoiceChannel creates a voice channel. rec may be nil when the host has
// no recognition engine; Start then reports ErrUnavailable.
func NewVoiceChannel(rec speech.Recognizer, keywords []string, emit func(), warn func(error), logger *slog.Logger) *VoiceChannel {
	if logger == nil {
		logger = slog.Default()
	}
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &VoiceChannel{
		rec:          rec,
		keywords:     kw,
		emit:         emit,
		warn:         warn,
		logger:       logger.With("channel", KindVoice),
		RestartDelay: DefaultVoiceRestartDelay,
	}
}

// Kind implements Channel.
func (c *VoiceChannel) Kind() Kind { return KindVoice }

// Start implements Channel.
func (c *VoiceChannel) Start(ctx context.Context) error {
	if c.rec == nil || !c.rec.Available() {
		return fmt.Errorf("voice: no recognition engine: %w", ErrUnavailable)
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.ctx = ctx
	c.mu.Unlock()

	c.rec.OnTranscript(c.handleTranscript)
	c.rec.OnEnd(c.handleEnd)
	c.rec.OnError(c.handleError)

	if err := c.rec.Start(ctx); err != nil {
		if speech.IsNotAllowed(err) {
			return fmt.Errorf("voice: %v: %w", err, ErrPermissionDenied)
		}
		return fmt.Errorf("voice: start recognition: %w", err)
	}

	c.mu.Lock()
	c.active = true
	c.denied = false
	c.mu.Unlock()

	c.logger.Debug("listening for keywords", "keywords", c.keywords)
	return nil
}

// Stop implements Channel.
func (c *VoiceChannel) Stop() {
	c.mu.Lock()
	wasActive := c.active
	c.active = false
	if c.restartTimer != nil {
		c.restartTimer.Stop()
		c.restartTimer = nil
	}
	c.mu.Unlock()

	if wasActive && c.rec != nil {
		_ = c.rec.Stop()
	}
}

// Running implements Channel.
func (c *VoiceChannel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// handleTranscript tests one incremental result against the keyword set.
// At most one trigger per result, regardless of how many keywords match.
func (c *VoiceChannel) handleTranscript(text string, isFinal bool) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()
	if !active {
		return
	}

	lower := strings.ToLower(text)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			c.logger.Info("emergency keyword heard", "keyword", k)
			c.emit()
			return
		}
	}
}

// handleEnd restarts recognition after spontaneous engine termination.
// This is routine engine behavior (end of utterance, OS policy), so it is
// retried silently; it never re-fires the emergency callback.
func (c *VoiceChannel) handleEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.logger.Debug("engine ended, scheduling restart", "delay", c.RestartDelay)
	c.restartTimer = time.AfterFunc(c.RestartDelay, c.restart)
}

// restart brings the engine back up if the channel is still supposed to run.
func (c *VoiceChannel) restart() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	ctx := c.ctx
	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	err := c.rec.Start(ctx)
	switch {
	case err == nil:
		// The channel may have stopped while the start was in flight.
		// Release the engine again rather than leak the microphone.
		c.mu.Lock()
		if !c.active {
			c.mu.Unlock()
			_ = c.rec.Stop()
			return
		}
		c.mu.Unlock()
		c.logger.Debug("engine restarted")
	case speech.IsNotAllowed(err):
		c.handleError(err)
	default:
		// Keep trying. The engine terminating is not a session failure.
		c.logger.Warn("engine restart failed, retrying", "error", err)
		c.mu.Lock()
		if c.active {
			c.restartTimer = time.AfterFunc(c.RestartDelay, c.restart)
		}
		c.mu.Unlock()
	}
}

// handleError reports a denial once and disables the channel for the session.
func (c *VoiceChannel) handleError(err error) {
	if !speech.IsNotAllowed(err) {
		c.logger.Warn("recognition error", "error", err)
		return
	}

	c.mu.Lock()
	alreadyDenied := c.denied
	c.denied = true
	c.active = false
	if c.restartTimer != nil {
		c.restartTimer.Stop()
		c.restartTimer = nil
	}
	c.mu.Unlock()

	_ = c.rec.Stop()

	if !alreadyDenied && c.warn != nil {
		c.warn(fmt.Errorf("voice: %v: %w", err, ErrPermissionDenied))
	}
}

// Ensure VoiceChannel implements Channel.
var _ Channel = (*VoiceChannel)(nil)
