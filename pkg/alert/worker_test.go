package alert

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitForCount(t *testing.T, n *MockNotifier, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for n.Count() < want {
		if time.Now().After(deadline) {
			t.Fatalf("notifications shown = %d, want %d", n.Count(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWorkerShowsEmergencyNotification(t *testing.T) {
	notifier := NewMockNotifier()
	w := NewWorker(notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Post(Message{Type: TypeEmergencyTriggered, Payload: Payload{ContactCount: 2}})
	waitForCount(t, notifier, 1)

	got := notifier.Shown[0]
	if got.Title != NotificationTitle {
		t.Errorf("Title = %q, want %q", got.Title, NotificationTitle)
	}
	if want := "Alert sent to 2 emergency contact(s) with your location."; got.Body != want {
		t.Errorf("Body = %q, want %q", got.Body, want)
	}

	// One message, one notification: nothing extra shows up.
	time.Sleep(50 * time.Millisecond)
	if notifier.Count() != 1 {
		t.Errorf("notifications shown = %d, want 1", notifier.Count())
	}

	displayed, dropped := w.Stats()
	if displayed != 1 || dropped != 0 {
		t.Errorf("Stats() = %d displayed, %d dropped, want 1 and 0", displayed, dropped)
	}
}

func TestWorkerIgnoresUnknownMessages(t *testing.T) {
	notifier := NewMockNotifier()
	w := NewWorker(notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Post(Message{Type: "PING"})
	w.Post(Message{Type: ""})
	w.Post(Message{Type: TypeEmergencyTriggered, Payload: Payload{ContactCount: 1}})
	waitForCount(t, notifier, 1)

	time.Sleep(50 * time.Millisecond)
	if notifier.Count() != 1 {
		t.Errorf("notifications shown = %d, want 1", notifier.Count())
	}
}

func TestWorkerNotifyFailureDoesNotCount(t *testing.T) {
	notifier := NewMockNotifier()
	notifier.NotifyFunc = func(n Notification) error { return errors.New("display refused") }
	w := NewWorker(notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Post(Message{Type: TypeEmergencyTriggered, Payload: Payload{ContactCount: 1}})

	time.Sleep(50 * time.Millisecond)
	displayed, _ := w.Stats()
	if displayed != 0 {
		t.Errorf("displayed = %d, want 0 after notifier failure", displayed)
	}
}

func TestRegistrarRegisterOnce(t *testing.T) {
	notifier := NewMockNotifier()
	r := NewRegistrar(NewWorker(notifier, nil), nil, nil)
	defer r.Shutdown()

	if r.Registered() {
		t.Fatal("Registered() = true before RegisterOnce")
	}
	if err := r.RegisterOnce(context.Background()); err != nil {
		t.Fatalf("RegisterOnce() error = %v", err)
	}
	if !r.Registered() {
		t.Error("Registered() = false after RegisterOnce")
	}
	if err := r.RegisterOnce(context.Background()); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second RegisterOnce() error = %v, want ErrAlreadyRegistered", err)
	}

	// The worker is live after registration.
	r.Worker().Post(Message{Type: TypeEmergencyTriggered, Payload: Payload{ContactCount: 1}})
	waitForCount(t, notifier, 1)
}
