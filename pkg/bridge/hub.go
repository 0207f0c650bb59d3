// Package bridge accepts sensor streams from companion devices over
// WebSocket and fans them out to the detection core's sources.
package bridge

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/protocol"
)

// DeviceConnection represents one connected companion device
type DeviceConnection struct {
	ID        string
	Conn      *websocket.Conn
	Connected time.Time
	LastSeen  time.Time

	mu sync.Mutex
}

// Send sends a message to the device
func (d *DeviceConnection) Send(msg *protocol.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := msg.Bytes()
	if err != nil {
		return err
	}

	return d.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages WebSocket connections from companion devices
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	devices map[string]*DeviceConnection

	decoder *micDecoder

	// Callbacks
	onMotion func(deviceID string, m *protocol.MotionData)
	onMic    func(deviceID string, pcm16 []byte, sampleRate int)
	onState  func(deviceID string, state *protocol.StateData)

	// Stats
	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
	samplesReceived  atomic.Uint64
}

// NewHub creates a new device hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger.With("component", "bridge"),
		devices: make(map[string]*DeviceConnection),
		decoder: newMicDecoder(),
	}
}

// OnMotion sets the callback for incoming accelerometer samples
func (h *Hub) OnMotion(callback func(deviceID string, m *protocol.MotionData)) {
	h.mu.Lock()
	h.onMotion = callback
	h.mu.Unlock()
}

// OnMic sets the callback for incoming microphone audio.
// Opus payloads are decoded to PCM16 before the callback fires.
func (h *Hub) OnMic(callback func(deviceID string, pcm16 []byte, sampleRate int)) {
	h.mu.Lock()
	h.onMic = callback
	h.mu.Unlock()
}

// OnState sets the callback for incoming device state
func (h *Hub) OnState(callback func(deviceID string, state *protocol.StateData)) {
	h.mu.Lock()
	h.onState = callback
	h.mu.Unlock()
}

// RegisterRoutes registers WebSocket routes on a Fiber app
func (h *Hub) RegisterRoutes(app *fiber.App) {
	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// Device connection endpoint
	app.Get("/ws/device", websocket.New(h.handleDevice))
	app.Get("/ws/device/:id", websocket.New(h.handleDevice))
}

// handleDevice handles a device WebSocket connection
func (h *Hub) handleDevice(c *websocket.Conn) {
	// Get device ID from path or generate one
	deviceID := c.Params("id")
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	device := &DeviceConnection{
		ID:        deviceID,
		Conn:      c,
		Connected: time.Now(),
		LastSeen:  time.Now(),
	}

	h.mu.Lock()
	h.devices[deviceID] = device
	count := len(h.devices)
	h.mu.Unlock()

	h.logger.Info("device connected", "device", deviceID, "total", count)

	defer func() {
		h.mu.Lock()
		delete(h.devices, deviceID)
		count := len(h.devices)
		h.mu.Unlock()
		h.logger.Info("device disconnected", "device", deviceID, "total", count)
	}()

	// Read loop
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			h.logger.Debug("device read error", "device", deviceID, "error", err)
			return
		}

		device.mu.Lock()
		device.LastSeen = time.Now()
		device.mu.Unlock()

		h.messagesReceived.Add(1)
		h.handleMessage(deviceID, data)
	}
}

// handleMessage processes an incoming message from a device
func (h *Hub) handleMessage(deviceID string, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		h.logger.Debug("parse error", "device", deviceID, "error", err)
		return
	}

	h.mu.RLock()
	motionCb := h.onMotion
	micCb := h.onMic
	stateCb := h.onState
	h.mu.RUnlock()

	switch msg.Type {
	case protocol.TypeMotion:
		h.samplesReceived.Add(1)
		if motionCb != nil {
			m, err := msg.GetMotionData()
			if err == nil {
				motionCb(deviceID, m)
			}
		}

	case protocol.TypeMic:
		if micCb != nil {
			mic, err := msg.GetMicData()
			if err != nil {
				return
			}
			pcm, err := h.decoder.decode(mic)
			if err != nil {
				h.logger.Debug("mic decode error", "device", deviceID, "error", err)
				return
			}
			micCb(deviceID, pcm, mic.SampleRate)
		}

	case protocol.TypeState:
		if stateCb != nil {
			state, err := msg.GetStateData()
			if err == nil {
				stateCb(deviceID, state)
			}
		}

	case protocol.TypePing:
		h.sendPong(deviceID, msg.Timestamp)
	}
}

// SendAlert pushes an emergency notification to one device
func (h *Hub) SendAlert(deviceID, title, body, action string) error {
	msg, err := protocol.NewAlertMessage(title, body, action)
	if err != nil {
		return err
	}
	return h.sendToDevice(deviceID, msg)
}

// BroadcastAlert pushes an emergency notification to every device
func (h *Hub) BroadcastAlert(title, body, action string) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.devices))
	for id := range h.devices {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		if err := h.SendAlert(id, title, body, action); err != nil {
			h.logger.Warn("alert send failed", "device", id, "error", err)
		}
	}
}

// SendConfig pushes detection settings to one device
func (h *Hub) SendConfig(deviceID string, cfg protocol.ConfigData) error {
	msg, err := protocol.NewConfigMessage(cfg)
	if err != nil {
		return err
	}
	return h.sendToDevice(deviceID, msg)
}

// BroadcastConfig pushes detection settings to every device
func (h *Hub) BroadcastConfig(cfg protocol.ConfigData) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.devices))
	for id := range h.devices {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		if err := h.SendConfig(id, cfg); err != nil {
			h.logger.Warn("config send failed", "device", id, "error", err)
		}
	}
}

// sendPong responds to a device health check
func (h *Hub) sendPong(deviceID string, pingTS int64) {
	msg, err := protocol.NewMessage(protocol.TypePong, nil)
	if err != nil {
		return
	}
	msg.Timestamp = pingTS
	_ = h.sendToDevice(deviceID, msg)
}

// sendToDevice delivers one message to a connected device
func (h *Hub) sendToDevice(deviceID string, msg *protocol.Message) error {
	h.mu.RLock()
	device, ok := h.devices[deviceID]
	h.mu.RUnlock()

	if !ok {
		return fiber.ErrNotFound
	}

	if err := device.Send(msg); err != nil {
		return err
	}
	h.messagesSent.Add(1)
	return nil
}

// DeviceCount returns the number of connected devices
func (h *Hub) DeviceCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.devices)
}

// Stats returns (received, sent, samples) message counters
func (h *Hub) Stats() (uint64, uint64, uint64) {
	return h.messagesReceived.Load(), h.messagesSent.Load(), h.samplesReceived.Load()
}
