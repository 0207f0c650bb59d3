package detection

import (
	"fmt"
	"strings"
)

// Sensitivity bounds for voice and motion tuning.
const (
	MinSensitivity = 10
	MaxSensitivity = 100
)

// Settings configures one detection session. It is owned by the caller and
// treated as immutable input; changing it requires a stop/start cycle.
type Settings struct {
	VoiceEnabled   bool `json:"voice_enabled"`
	BlinkEnabled   bool `json:"blink_enabled"`
	GestureEnabled bool `json:"gesture_enabled"`
	MotionEnabled  bool `json:"motion_enabled"`

	// VoiceSensitivity is a 10-100 tuning input. It is carried for the
	// caller's benefit and does not alter keyword matching.
	VoiceSensitivity int `json:"voice_sensitivity"`

	// MotionSensitivity is a 10-100 tuning input. Higher values lower the
	// shake trigger threshold.
	MotionSensitivity int `json:"motion_sensitivity"`

	// EmergencyKeywords are matched case-insensitively as substrings of
	// incoming transcripts.
	EmergencyKeywords []string `json:"emergency_keywords"`
}

// DefaultSettings returns a conservative configuration with voice and motion
// active.
func DefaultSettings() *Settings {
	return &Settings{
		VoiceEnabled:      true,
		MotionEnabled:     true,
		VoiceSensitivity:  70,
		MotionSensitivity: 60,
		EmergencyKeywords: []string{"help", "emergency"},
	}
}

// Validate checks sensitivity ranges and keyword presence.
func (s *Settings) Validate() error {
	if s.VoiceSensitivity < MinSensitivity || s.VoiceSensitivity > MaxSensitivity {
		return fmt.Errorf("detection: voice sensitivity %d out of range [%d,%d]",
			s.VoiceSensitivity, MinSensitivity, MaxSensitivity)
	}
	if s.MotionSensitivity < MinSensitivity || s.MotionSensitivity > MaxSensitivity {
		return fmt.Errorf("detection: motion sensitivity %d out of range [%d,%d]",
			s.MotionSensitivity, MinSensitivity, MaxSensitivity)
	}
	if s.VoiceEnabled {
		if len(s.EmergencyKeywords) == 0 {
			return fmt.Errorf("detection: voice enabled with no emergency keywords")
		}
		for i, k := range s.EmergencyKeywords {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("detection: emergency keyword %d is empty", i)
			}
		}
	}
	return nil
}

// MotionThreshold derives the shake trigger threshold from the configured
// sensitivity: higher sensitivity yields a lower threshold.
func (s *Settings) MotionThreshold() float64 {
	return float64(100-s.MotionSensitivity) / 10
}

// CameraRequired reports whether the camera channel should run.
func (s *Settings) CameraRequired() bool {
	return s.BlinkEnabled || s.GestureEnabled
}
