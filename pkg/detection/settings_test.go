package detection

import (
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(s *Settings) {},
			wantErr: false,
		},
		{
			name:    "voice sensitivity too low",
			mutate:  func(s *Settings) { s.VoiceSensitivity = 5 },
			wantErr: true,
		},
		{
			name:    "voice sensitivity too high",
			mutate:  func(s *Settings) { s.VoiceSensitivity = 150 },
			wantErr: true,
		},
		{
			name:    "motion sensitivity out of range",
			mutate:  func(s *Settings) { s.MotionSensitivity = 0 },
			wantErr: true,
		},
		{
			name:    "voice enabled without keywords",
			mutate:  func(s *Settings) { s.EmergencyKeywords = nil },
			wantErr: true,
		},
		{
			name:    "empty keyword",
			mutate:  func(s *Settings) { s.EmergencyKeywords = []string{"help", "  "} },
			wantErr: true,
		},
		{
			name: "voice disabled needs no keywords",
			mutate: func(s *Settings) {
				s.VoiceEnabled = false
				s.EmergencyKeywords = nil
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMotionThreshold(t *testing.T) {
	tests := []struct {
		sensitivity int
		want        float64
	}{
		{sensitivity: 60, want: 4.0},
		{sensitivity: 100, want: 0.0},
		{sensitivity: 10, want: 9.0},
		{sensitivity: 50, want: 5.0},
	}

	for _, tt := range tests {
		s := &Settings{MotionSensitivity: tt.sensitivity}
		if got := s.MotionThreshold(); got != tt.want {
			t.Errorf("MotionThreshold(sensitivity=%d) = %v, want %v", tt.sensitivity, got, tt.want)
		}
	}
}

func TestCameraRequired(t *testing.T) {
	s := &Settings{}
	if s.CameraRequired() {
		t.Error("camera should not be required with blink and gesture disabled")
	}
	s.BlinkEnabled = true
	if !s.CameraRequired() {
		t.Error("camera should be required with blink enabled")
	}
	s.BlinkEnabled = false
	s.GestureEnabled = true
	if !s.CameraRequired() {
		t.Error("camera should be required with gesture enabled")
	}
}
