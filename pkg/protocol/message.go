// Package protocol defines the WebSocket message types exchanged between
// companion devices (phone, wearable) and the sentinel daemon.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Device → Sentinel messages
	TypeMotion MessageType = "motion" // Accelerometer sample
	TypeMic    MessageType = "mic"    // Microphone audio
	TypeState  MessageType = "state"  // Device state

	// Sentinel → Device messages
	TypeAlert  MessageType = "alert"  // Emergency notification
	TypeConfig MessageType = "config" // Detection settings update

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Device → Sentinel Message Types
// =============================================================================

// MotionData contains one device-acceleration sample.
// Absent axes default to zero.
type MotionData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MicData contains microphone audio
type MicData struct {
	Format     string `json:"format"`      // "pcm16", "opus"
	SampleRate int    `json:"sample_rate"` // e.g., 16000
	Channels   int    `json:"channels"`    // 1 for mono
	Data       string `json:"data"`        // base64 encoded
}

// StateData contains device state information
type StateData struct {
	Model      string  `json:"model,omitempty"`
	Battery    float64 `json:"battery,omitempty"` // 0.0 to 1.0
	Foreground bool    `json:"foreground"`        // App visible on screen
	Latitude   float64 `json:"lat,omitempty"`
	Longitude  float64 `json:"lon,omitempty"`
}

// =============================================================================
// Sentinel → Device Message Types
// =============================================================================

// AlertData is the notification pushed to a device after a trigger.
type AlertData struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Action string `json:"action,omitempty"`
}

// ConfigData carries detection settings to a device.
type ConfigData struct {
	VoiceEnabled      bool     `json:"voice_enabled"`
	MotionEnabled     bool     `json:"motion_enabled"`
	MotionSensitivity int      `json:"motion_sensitivity"`
	EmergencyKeywords []string `json:"emergency_keywords,omitempty"`
}
