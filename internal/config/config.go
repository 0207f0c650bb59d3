// Package config provides configuration helpers for sentinel commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the sentinel daemon.
const (
	DefaultPort         = "8089"
	DefaultASRURL       = "wss://api.deepgram.com/v1/listen"
	DefaultCameraDevice = 0
	DefaultSampleRate   = 16000
)

// Port returns the HTTP listen port from SENTINEL_PORT or the default.
func Port() string {
	if p := os.Getenv("SENTINEL_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// LogLevel returns the log level from LOG_LEVEL or "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

// ASRKey returns the streaming speech-to-text API key.
// Empty means speech recognition is unavailable on this host.
func ASRKey() string {
	return os.Getenv("ASR_API_KEY")
}

// ASRURL returns the streaming speech-to-text endpoint from ASR_URL or the default.
func ASRURL() string {
	if u := os.Getenv("ASR_URL"); u != "" {
		return u
	}
	return DefaultASRURL
}

// CameraDevice returns the capture device index from CAMERA_DEVICE or the default.
func CameraDevice() int {
	if d := os.Getenv("CAMERA_DEVICE"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			return n
		}
	}
	return DefaultCameraDevice
}

// CameraDisabled reports whether camera capture is disabled on this host.
func CameraDisabled() bool {
	return os.Getenv("CAMERA_DISABLED") == "1"
}

// AppURL returns the companion app base URL for offline precaching.
// Empty disables the precache.
func AppURL() string {
	return os.Getenv("APP_URL")
}
