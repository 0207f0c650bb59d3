package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/alert"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/detection"
)

// fakeDetector is a scripted Detector for handler tests.
type fakeDetector struct {
	status detection.Status
	active bool

	startSettings []*detection.Settings
	stopCalls     int
}

func (f *fakeDetector) Start(ctx context.Context, settings *detection.Settings) detection.Status {
	f.startSettings = append(f.startSettings, settings)
	if settings == nil {
		return detection.Status{}
	}
	f.active = true
	return f.status
}

func (f *fakeDetector) Stop() {
	f.stopCalls++
	f.active = false
	f.status = detection.Status{}
}

func (f *fakeDetector) Status() detection.Status { return f.status }
func (f *fakeDetector) Active() bool             { return f.active }

func newTestServer(det *fakeDetector) *Server {
	worker := alert.NewWorker(alert.NewMockNotifier(), nil)
	return NewServer("0", det, worker, nil)
}

func TestHandleStart(t *testing.T) {
	det := &fakeDetector{status: detection.Status{Voice: true, Motion: true}}
	srv := newTestServer(det)

	body := `{"voice_enabled":true,"motion_enabled":true,"voice_sensitivity":70,"motion_sensitivity":60,"emergency_keywords":["help"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got struct {
		Channels detection.Status `json:"channels"`
	}
	decodeBody(t, resp.Body, &got)
	if !got.Channels.Voice || !got.Channels.Motion || got.Channels.Camera {
		t.Errorf("channels = %+v, want {true true false}", got.Channels)
	}
	if len(det.startSettings) != 1 || det.startSettings[0] == nil {
		t.Fatal("detector did not receive settings")
	}
	if !det.startSettings[0].VoiceEnabled {
		t.Error("settings not parsed from request body")
	}
}

func TestHandleStartWithoutBody(t *testing.T) {
	det := &fakeDetector{}
	srv := newTestServer(det)

	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	if len(det.startSettings) != 1 || det.startSettings[0] != nil {
		t.Error("detector should receive nil settings for an empty body")
	}
}

func TestHandleStartBadJSON(t *testing.T) {
	srv := newTestServer(&fakeDetector{})

	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleStop(t *testing.T) {
	det := &fakeDetector{status: detection.Status{Voice: true}, active: true}
	srv := newTestServer(det)

	req := httptest.NewRequest(http.MethodPost, "/api/detection/stop", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if det.stopCalls != 1 {
		t.Errorf("stopCalls = %d, want 1", det.stopCalls)
	}

	var got struct {
		Channels detection.Status `json:"channels"`
	}
	decodeBody(t, resp.Body, &got)
	if got.Channels != (detection.Status{}) {
		t.Errorf("channels after stop = %+v, want all false", got.Channels)
	}
}

func TestHandleStatus(t *testing.T) {
	det := &fakeDetector{status: detection.Status{Motion: true}, active: true}
	srv := newTestServer(det)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got struct {
		Active   bool             `json:"active"`
		Channels detection.Status `json:"channels"`
	}
	decodeBody(t, resp.Body, &got)
	if !got.Active {
		t.Error("active = false, want true")
	}
	if !got.Channels.Motion {
		t.Errorf("channels = %+v, want motion true", got.Channels)
	}
}

func TestHandleAlert(t *testing.T) {
	t.Run("accepts emergency message", func(t *testing.T) {
		srv := newTestServer(&fakeDetector{})

		body := `{"type":"EMERGENCY_TRIGGERED","payload":{"contactCount":2}}`
		req := httptest.NewRequest(http.MethodPost, "/api/alert", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.App().Test(req)
		if err != nil {
			t.Fatalf("Test() error = %v", err)
		}
		if resp.StatusCode != http.StatusAccepted {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusAccepted)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		srv := newTestServer(&fakeDetector{})

		req := httptest.NewRequest(http.MethodPost, "/api/alert", strings.NewReader(`{"type":"PING"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.App().Test(req)
		if err != nil {
			t.Fatalf("Test() error = %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}

func decodeBody(t *testing.T, r io.Reader, v interface{}) {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode body %s: %v", data, err)
	}
}
