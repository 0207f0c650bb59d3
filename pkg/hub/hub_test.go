package hub

import (
	"testing"
)

func TestBroadcastJSONQueues(t *testing.T) {
	h := New("test", nil)

	if err := h.BroadcastJSON(map[string]string{"event": "status"}); err != nil {
		t.Fatalf("BroadcastJSON() error = %v", err)
	}

	select {
	case data := <-h.broadcast:
		if string(data) != `{"event":"status"}` {
			t.Errorf("queued event = %s", data)
		}
	default:
		t.Fatal("event was not queued")
	}
}

func TestBroadcastJSONUnencodable(t *testing.T) {
	h := New("test", nil)
	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Error("BroadcastJSON() error = nil, want marshal error")
	}
}

func TestBroadcastJSONFullQueueDrops(t *testing.T) {
	h := New("test", nil)
	for i := 0; i < cap(h.broadcast)+10; i++ {
		if err := h.BroadcastJSON(i); err != nil {
			t.Fatalf("BroadcastJSON() error = %v", err)
		}
	}
	if got := len(h.broadcast); got != cap(h.broadcast) {
		t.Errorf("queued = %d, want %d", got, cap(h.broadcast))
	}
}

func TestClientCountEmpty(t *testing.T) {
	h := New("test", nil)
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", h.ClientCount())
	}
}
