package protocol

import (
	"encoding/base64"
)

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewMotionMessage creates a motion sample message
func NewMotionMessage(x, y, z float64) (*Message, error) {
	return NewMessage(TypeMotion, MotionData{X: x, Y: y, Z: z})
}

// NewMicMessage creates a microphone audio message from raw PCM16 data
func NewMicMessage(pcmData []byte, sampleRate int) (*Message, error) {
	return NewMessage(TypeMic, MicData{
		Format:     "pcm16",
		SampleRate: sampleRate,
		Channels:   1,
		Data:       base64.StdEncoding.EncodeToString(pcmData),
	})
}

// NewOpusMicMessage creates a microphone audio message from an opus frame
func NewOpusMicMessage(opusFrame []byte, sampleRate int) (*Message, error) {
	return NewMessage(TypeMic, MicData{
		Format:     "opus",
		SampleRate: sampleRate,
		Channels:   1,
		Data:       base64.StdEncoding.EncodeToString(opusFrame),
	})
}

// NewStateMessage creates a device state message
func NewStateMessage(state StateData) (*Message, error) {
	return NewMessage(TypeState, state)
}

// NewAlertMessage creates an alert notification message
func NewAlertMessage(title, body, action string) (*Message, error) {
	return NewMessage(TypeAlert, AlertData{
		Title:  title,
		Body:   body,
		Action: action,
	})
}

// NewConfigMessage creates a detection settings update message
func NewConfigMessage(cfg ConfigData) (*Message, error) {
	return NewMessage(TypeConfig, cfg)
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetMotionData extracts a motion sample from a message
func (m *Message) GetMotionData() (*MotionData, error) {
	var data MotionData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetMicData extracts mic data from a message
func (m *Message) GetMicData() (*MicData, error) {
	var data MicData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DecodeMicData decodes the base64 audio data
func (mic *MicData) DecodeMicData() ([]byte, error) {
	return base64.StdEncoding.DecodeString(mic.Data)
}

// GetStateData extracts device state from a message
func (m *Message) GetStateData() (*StateData, error) {
	var data StateData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetAlertData extracts alert data from a message
func (m *Message) GetAlertData() (*AlertData, error) {
	var data AlertData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetConfigData extracts detection settings from a message
func (m *Message) GetConfigData() (*ConfigData, error) {
	var data ConfigData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
