// Package detection implements the multi-sensor emergency detection core.
//
// A Supervisor owns one channel per configured modality (voice, motion,
// camera), starts and stops them as a unit, and folds their signals into a
// single outward "emergency detected" callback. Channel failures are
// isolated: a denied or missing capability disables that channel for the
// session and is surfaced as a Warning, while the other channels keep
// running.
//
// Example usage:
//
//	sup := detection.NewSupervisor(rec, motionSrc, cam, logger)
//	sup.OnEmergency(func() {
//	    // Begin the notification workflow
//	})
//	sup.OnWarning(func(w detection.Warning) {
//	    log.Warn("channel degraded", "warning", w.String())
//	})
//	status := sup.Start(ctx, settings)
package detection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/capture"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/sensor"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/speech"
)

// Status is the last known started-successfully flag per modality.
// Recomputed on every start cycle; all false after Stop.
type Status struct {
	Voice  bool `json:"voice"`
	Motion bool `json:"motion"`
	Camera bool `json:"camera"`
}

// event is one item on the session's serialized dispatch queue.
// warn == nil means an emergency trigger.
type event struct {
	kind Kind
	warn error
}

// Supervisor owns the set of active sensor channels for one detection
// session. All emergency and warning callbacks are dispatched from a single
// goroutine, so invocations are never concurrent.
type Supervisor struct {
	logger *slog.Logger

	rec    speech.Recognizer
	motion sensor.MotionSource
	camera capture.Camera

	// VoiceRestartDelay overrides the voice channel restart pause.
	VoiceRestartDelay time.Duration

	// MotionDebounce overrides the motion trigger suppression window.
	MotionDebounce time.Duration

	// Clock is the time source handed to channels. For tests.
	Clock func() time.Time

	cbMu        sync.RWMutex
	onEmergency func()
	onWarning   func(Warning)

	mu        sync.Mutex
	sessionID string
	channels  []Channel
	status    Status
	events    chan event
	loopDone  chan struct{}
}

// NewSupervisor creates a supervisor over the given capability providers.
// Any provider may be nil; the matching modality then reports unavailable.
func NewSupervisor(rec speech.Recognizer, motion sensor.MotionSource, camera capture.Camera, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		logger:            logger.With("component", "detection"),
		rec:               rec,
		motion:            motion,
		camera:            camera,
		VoiceRestartDelay: DefaultVoiceRestartDelay,
		MotionDebounce:    DefaultMotionDebounce,
		Clock:             time.Now,
	}
}

// OnEmergency sets the single outward emergency callback.
func (s *Supervisor) OnEmergency(fn func()) {
	s.cbMu.Lock()
	s.onEmergency = fn
	s.cbMu.Unlock()
}

// OnWarning sets the callback for non-fatal channel conditions.
func (s *Supervisor) OnWarning(fn func(Warning)) {
	s.cbMu.Lock()
	s.onWarning = fn
	s.cbMu.Unlock()
}

// Start begins a detection session and returns the per-channel outcome.
//
// Start never fails hard: unavailable or denied channels come back false in
// the Status with a Warning each. A nil or invalid settings value refuses
// the whole start and reports ErrSettingsRequired, leaving any running
// session untouched. Starting with valid settings while a session is active
// stops it first, so no channel handles leak across sessions.
func (s *Supervisor) Start(ctx context.Context, settings *Settings) Status {
	// Refuse before touching anything: a refused start must leave a
	// running session exactly as it was.
	if settings == nil {
		s.reportWarning(Warning{Err: ErrSettingsRequired})
		return Status{}
	}
	if err := settings.Validate(); err != nil {
		s.reportWarning(Warning{Err: fmt.Errorf("%v: %w", err, ErrSettingsRequired)})
		return Status{}
	}

	s.mu.Lock()

	if s.sessionID != "" {
		s.logger.Info("restarting detection, stopping previous session", "session", s.sessionID)
		s.stopLocked()
	}

	session := uuid.NewString()
	events := make(chan event, 32)
	done := make(chan struct{})
	s.sessionID = session
	s.events = events
	s.loopDone = done
	go s.dispatchLoop(events, done)

	if settings.VoiceEnabled {
		vc := NewVoiceChannel(s.rec, settings.EmergencyKeywords,
			s.emitFunc(session, KindVoice), s.warnFunc(session, KindVoice), s.logger)
		vc.RestartDelay = s.VoiceRestartDelay
		s.status.Voice = s.startChannel(ctx, vc)
	}

	if settings.MotionEnabled {
		mc := NewMotionChannel(s.motion, settings.MotionThreshold(),
			s.emitFunc(session, KindMotion), s.logger)
		mc.Debounce = s.MotionDebounce
		mc.SetClock(s.Clock)
		s.status.Motion = s.startChannel(ctx, mc)
	}

	if settings.CameraRequired() {
		cc := NewCameraChannel(s.camera, s.logger)
		s.status.Camera = s.startChannel(ctx, cc)
	}

	st := s.status
	s.mu.Unlock()

	s.logger.Info("detection started",
		"session", session,
		"voice", st.Voice,
		"motion", st.Motion,
		"camera", st.Camera,
	)
	return st
}

// Stop unconditionally tears down every tracked channel.
// Idempotent; safe before any Start and safe to call twice.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Status returns the current snapshot. It does not probe hardware.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Active reports whether a detection session is running.
func (s *Supervisor) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID != ""
}

// SessionID returns the current session identifier, empty when idle.
func (s *Supervisor) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// startChannel starts one channel, recording failures as warnings.
// Must be called with s.mu held.
func (s *Supervisor) startChannel(ctx context.Context, ch Channel) bool {
	if err := ch.Start(ctx); err != nil {
		s.logger.Warn("channel unavailable for session",
			"channel", ch.Kind(), "error", err)
		s.sendEvent(event{kind: ch.Kind(), warn: err})
		return false
	}
	s.channels = append(s.channels, ch)
	return true
}

// stopLocked tears down the session. Must be called with s.mu held.
func (s *Supervisor) stopLocked() {
	for _, ch := range s.channels {
		ch.Stop()
	}
	s.channels = nil
	s.status = Status{}

	if s.loopDone != nil {
		close(s.loopDone)
		s.loopDone = nil
	}
	s.events = nil

	if s.sessionID != "" {
		s.logger.Info("detection stopped", "session", s.sessionID)
		s.sessionID = ""
	}
}

// emitFunc builds a channel's trigger callback, bound to its session.
// A stale completion from a previous session is a no-op.
func (s *Supervisor) emitFunc(session string, kind Kind) func() {
	return func() {
		s.dispatch(session, event{kind: kind})
	}
}

// warnFunc builds a channel's asynchronous warning callback.
func (s *Supervisor) warnFunc(session string, kind Kind) func(error) {
	return func(err error) {
		s.dispatch(session, event{kind: kind, warn: err})
	}
}

// dispatch queues an event if the session is still current.
func (s *Supervisor) dispatch(session string, ev event) {
	s.mu.Lock()
	current := s.sessionID == session
	events := s.events
	s.mu.Unlock()

	if !current || events == nil {
		s.logger.Debug("dropping stale event", "channel", ev.kind)
		return
	}

	select {
	case events <- ev:
	default:
		s.logger.Warn("event queue full, dropping", "channel", ev.kind)
	}
}

// sendEvent queues an event for the current session.
// Must be called with s.mu held.
func (s *Supervisor) sendEvent(ev event) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("event queue full, dropping", "channel", ev.kind)
	}
}

// dispatchLoop serializes all outward callbacks for one session.
func (s *Supervisor) dispatchLoop(events chan event, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-events:
			if ev.warn != nil {
				s.reportWarning(Warning{Channel: ev.kind, Err: ev.warn})
				continue
			}
			s.logger.Info("emergency detected", "channel", ev.kind)
			s.cbMu.RLock()
			fn := s.onEmergency
			s.cbMu.RUnlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// reportWarning invokes the warning callback if one is set.
func (s *Supervisor) reportWarning(w Warning) {
	s.cbMu.RLock()
	fn := s.onWarning
	s.cbMu.RUnlock()
	if fn != nil {
		fn(w)
	}
}
