package detection

import (
	"context"
	"testing"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/capture"
)

func TestCameraChannelHoldsStream(t *testing.T) {
	cam := capture.NewMockCamera()
	cc := NewCameraChannel(cam, nil)

	if err := cc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !cam.Opened() {
		t.Error("camera should be open while the channel runs")
	}
	if !cc.Running() {
		t.Error("Running() = false, want true")
	}

	cc.Stop()
	if cam.Opened() {
		t.Error("camera should be released after Stop")
	}
	if cam.OpenCalls != 1 || cam.CloseCalls != 1 {
		t.Errorf("OpenCalls = %d, CloseCalls = %d, want 1 and 1", cam.OpenCalls, cam.CloseCalls)
	}
}

func TestCameraChannelStopIdempotent(t *testing.T) {
	cam := capture.NewMockCamera()
	cc := NewCameraChannel(cam, nil)

	// Stop before Start is a no-op.
	cc.Stop()
	if cam.CloseCalls != 0 {
		t.Errorf("CloseCalls before Start = %d, want 0", cam.CloseCalls)
	}

	if err := cc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cc.Stop()
	cc.Stop()
	if cam.CloseCalls != 1 {
		t.Errorf("CloseCalls after double Stop = %d, want 1", cam.CloseCalls)
	}
}

func TestCameraChannelStartErrors(t *testing.T) {
	t.Run("no camera", func(t *testing.T) {
		cc := NewCameraChannel(nil, nil)
		if err := cc.Start(context.Background()); !IsUnavailable(err) {
			t.Errorf("Start() error = %v, want unavailable", err)
		}
	})

	t.Run("access denied", func(t *testing.T) {
		cam := capture.NewMockCamera()
		cam.OpenFunc = func(ctx context.Context) error { return capture.ErrNotAllowed }
		cc := NewCameraChannel(cam, nil)
		if err := cc.Start(context.Background()); !IsPermissionDenied(err) {
			t.Errorf("Start() error = %v, want permission denied", err)
		}
	})

	t.Run("device missing", func(t *testing.T) {
		cam := capture.NewMockCamera()
		cam.OpenFunc = func(ctx context.Context) error { return capture.ErrUnavailable }
		cc := NewCameraChannel(cam, nil)
		if err := cc.Start(context.Background()); !IsUnavailable(err) {
			t.Errorf("Start() error = %v, want unavailable", err)
		}
	})
}
