package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultASRURL     = "wss://api.deepgram.com/v1/listen"
	defaultSampleRate = 16000
	handshakeTimeout  = 10 * time.Second
	writeTimeout      = 5 * time.Second
)

// Config configures a WSRecognizer.
type Config struct {
	// URL is the streaming recognition endpoint.
	URL string

	// APIKey authenticates against the recognition service.
	APIKey string

	// SampleRate of the PCM16 audio that will be streamed.
	SampleRate int

	// Language is the BCP-47 language hint (e.g., "en").
	Language string

	// Logger for connection events. Defaults to slog.Default().
	Logger *slog.Logger
}

// WSRecognizer implements Recognizer against a realtime ASR service
// speaking the Deepgram-style streaming protocol over WebSocket.
type WSRecognizer struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	conn     *websocket.Conn
	running  bool
	stopping bool

	onTranscript func(text string, isFinal bool)
	onEnd        func()
	onError      func(err error)

	messagesReceived atomic.Int64
}

// resultEvent is one incremental recognition result from the service.
type resultEvent struct {
	Type    string `json:"type"`
	IsFinal bool   `json:"is_final"`
	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
}

// NewWSRecognizer creates a WebSocket streaming recognizer.
func NewWSRecognizer(cfg Config) *WSRecognizer {
	if cfg.URL == "" {
		cfg.URL = defaultASRURL
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &WSRecognizer{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "speech.ws"),
	}
}

// Available reports whether the recognizer has credentials to work with.
func (r *WSRecognizer) Available() bool {
	return r.cfg.APIKey != ""
}

// OnTranscript implements Recognizer.
func (r *WSRecognizer) OnTranscript(fn func(text string, isFinal bool)) {
	r.mu.Lock()
	r.onTranscript = fn
	r.mu.Unlock()
}

// OnEnd implements Recognizer.
func (r *WSRecognizer) OnEnd(fn func()) {
	r.mu.Lock()
	r.onEnd = fn
	r.mu.Unlock()
}

// OnError implements Recognizer.
func (r *WSRecognizer) OnError(fn func(err error)) {
	r.mu.Lock()
	r.onError = fn
	r.mu.Unlock()
}

// Start implements Recognizer. It dials the service and spawns the read loop.
func (r *WSRecognizer) Start(ctx context.Context) error {
	if r.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.mu.Unlock()

	wsURL, err := url.Parse(r.cfg.URL)
	if err != nil {
		return fmt.Errorf("speech: invalid URL: %w", err)
	}
	q := wsURL.Query()
	q.Set("encoding", "linear16")
	q.Set("sample_rate", strconv.Itoa(r.cfg.SampleRate))
	q.Set("channels", "1")
	q.Set("interim_results", "true")
	if r.cfg.Language != "" {
		q.Set("language", r.cfg.Language)
	}
	wsURL.RawQuery = q.Encode()

	headers := http.Header{}
	headers.Set("Authorization", "Token "+r.cfg.APIKey)

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, wsURL.String(), headers)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("speech: rejected with HTTP %d: %w", resp.StatusCode, ErrNotAllowed)
		}
		return &ConnectionError{Reason: "dial failed", Cause: err}
	}

	r.mu.Lock()
	r.conn = conn
	r.running = true
	r.stopping = false
	r.mu.Unlock()

	r.logger.Info("recognition started", "url", wsURL.Host, "sample_rate", r.cfg.SampleRate)

	go r.readLoop(conn)
	return nil
}

// Stop implements Recognizer. A user-initiated Stop does not fire OnEnd.
func (r *WSRecognizer) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.stopping = true
	r.running = false
	conn := r.conn
	r.conn = nil
	r.mu.Unlock()

	if conn != nil {
		// Best-effort close handshake, then tear down.
		deadline := time.Now().Add(writeTimeout)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = conn.Close()
	}

	r.logger.Info("recognition stopped")
	return nil
}

// SendAudio implements Recognizer.
func (r *WSRecognizer) SendAudio(pcm16 []byte) error {
	r.mu.RLock()
	conn := r.conn
	running := r.running
	r.mu.RUnlock()

	if !running || conn == nil {
		return ErrNotStarted
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, pcm16); err != nil {
		return &ConnectionError{Reason: "audio write failed", Cause: err}
	}
	return nil
}

// readLoop consumes recognition results until the connection ends.
func (r *WSRecognizer) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			r.handleClosed(err)
			return
		}
		r.messagesReceived.Add(1)
		r.handleServerMessage(data)
	}
}

// handleServerMessage parses one service event and dispatches transcripts.
func (r *WSRecognizer) handleServerMessage(data []byte) {
	var ev resultEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		r.logger.Debug("unparseable server message", "error", err)
		return
	}

	switch ev.Type {
	case "Results":
		// Concatenate the best transcript of every alternative.
		var sb strings.Builder
		for _, alt := range ev.Channel.Alternatives {
			sb.WriteString(alt.Transcript)
		}
		text := sb.String()
		if text == "" {
			return
		}

		r.mu.RLock()
		fn := r.onTranscript
		r.mu.RUnlock()
		if fn != nil {
			fn(text, ev.IsFinal)
		}

	case "Metadata", "UtteranceEnd", "SpeechStarted":
		// Informational events, nothing to dispatch.

	default:
		r.logger.Debug("unknown server event", "type", ev.Type)
	}
}

// handleClosed distinguishes a user Stop from spontaneous termination.
func (r *WSRecognizer) handleClosed(err error) {
	r.mu.Lock()
	wasStopping := r.stopping
	r.running = false
	r.conn = nil
	onEnd := r.onEnd
	onError := r.onError
	r.mu.Unlock()

	if wasStopping {
		return
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		r.logger.Debug("engine ended session", "error", err)
	} else {
		r.logger.Warn("connection lost", "error", err)
		if onError != nil {
			onError(&ConnectionError{Reason: "connection lost", Cause: err})
		}
	}

	if onEnd != nil {
		onEnd()
	}
}

// Stats returns the number of server messages received. Useful for debugging.
func (r *WSRecognizer) Stats() int64 {
	return r.messagesReceived.Load()
}

// Ensure WSRecognizer implements Recognizer.
var _ Recognizer = (*WSRecognizer)(nil)
