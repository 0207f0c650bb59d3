package bridge

import (
	"testing"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/protocol"
)

func TestHubDispatchesMotion(t *testing.T) {
	h := NewHub(nil)

	var gotDevice string
	var gotSample *protocol.MotionData
	h.OnMotion(func(deviceID string, m *protocol.MotionData) {
		gotDevice = deviceID
		gotSample = m
	})

	msg, err := protocol.NewMotionMessage(3.0, 4.0, 0.0)
	if err != nil {
		t.Fatalf("NewMotionMessage() error = %v", err)
	}
	raw, _ := msg.Bytes()

	h.handleMessage("phone-1", raw)

	if gotSample == nil {
		t.Fatal("motion callback not invoked")
	}
	if gotDevice != "phone-1" {
		t.Errorf("deviceID = %q, want phone-1", gotDevice)
	}
	if gotSample.X != 3.0 || gotSample.Y != 4.0 {
		t.Errorf("sample = %+v, want {3 4 0}", gotSample)
	}

	_, _, samples := h.Stats()
	if samples != 1 {
		t.Errorf("samples received = %d, want 1", samples)
	}
}

func TestHubDispatchesPCMMic(t *testing.T) {
	h := NewHub(nil)

	var gotPCM []byte
	var gotRate int
	h.OnMic(func(deviceID string, pcm16 []byte, sampleRate int) {
		gotPCM = pcm16
		gotRate = sampleRate
	})

	pcm := []byte{0x10, 0x20, 0x30, 0x40}
	msg, err := protocol.NewMicMessage(pcm, 16000)
	if err != nil {
		t.Fatalf("NewMicMessage() error = %v", err)
	}
	raw, _ := msg.Bytes()

	h.handleMessage("phone-1", raw)

	if gotPCM == nil {
		t.Fatal("mic callback not invoked")
	}
	if gotRate != 16000 {
		t.Errorf("sampleRate = %d, want 16000", gotRate)
	}
	if len(gotPCM) != len(pcm) {
		t.Fatalf("pcm length = %d, want %d", len(gotPCM), len(pcm))
	}
	for i := range pcm {
		if gotPCM[i] != pcm[i] {
			t.Errorf("pcm[%d] = %#x, want %#x", i, gotPCM[i], pcm[i])
		}
	}
}

func TestHubDispatchesState(t *testing.T) {
	h := NewHub(nil)

	var got *protocol.StateData
	h.OnState(func(deviceID string, state *protocol.StateData) { got = state })

	msg, err := protocol.NewStateMessage(protocol.StateData{
		Model:      "pixel-9",
		Battery:    0.4,
		Foreground: true,
	})
	if err != nil {
		t.Fatalf("NewStateMessage() error = %v", err)
	}
	raw, _ := msg.Bytes()

	h.handleMessage("phone-1", raw)

	if got == nil {
		t.Fatal("state callback not invoked")
	}
	if got.Model != "pixel-9" || !got.Foreground {
		t.Errorf("state = %+v", got)
	}
}

func TestHubIgnoresGarbage(t *testing.T) {
	h := NewHub(nil)

	var called bool
	h.OnMotion(func(string, *protocol.MotionData) { called = true })

	h.handleMessage("phone-1", []byte(`{broken`))
	h.handleMessage("phone-1", []byte(`{"type":"unknown-type"}`))

	if called {
		t.Error("callbacks fired for unparseable input")
	}
}

func TestHubSendToUnknownDevice(t *testing.T) {
	h := NewHub(nil)
	if err := h.SendAlert("nobody", "Emergency Alert Sent", "body", "view"); err == nil {
		t.Error("SendAlert() to unknown device error = nil, want error")
	}
	if err := h.SendConfig("nobody", protocol.ConfigData{MotionEnabled: true}); err == nil {
		t.Error("SendConfig() to unknown device error = nil, want error")
	}
	if h.DeviceCount() != 0 {
		t.Errorf("DeviceCount() = %d, want 0", h.DeviceCount())
	}
}

func TestHubBroadcastConfigNoDevices(t *testing.T) {
	h := NewHub(nil)

	// No devices connected: nothing sent, nothing counted.
	h.BroadcastConfig(protocol.ConfigData{
		VoiceEnabled:      true,
		MotionSensitivity: 60,
		EmergencyKeywords: []string{"help"},
	})

	_, sent, _ := h.Stats()
	if sent != 0 {
		t.Errorf("messages sent = %d, want 0", sent)
	}
}
