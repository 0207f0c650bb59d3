package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam acquires a local camera device through OpenCV.
type Webcam struct {
	device int
	logger *slog.Logger

	mu  sync.Mutex
	cap *gocv.VideoCapture
}

// NewWebcam creates a webcam for the given device index (typically 0 for
// the front-facing camera).
func NewWebcam(device int, logger *slog.Logger) *Webcam {
	if logger == nil {
		logger = slog.Default()
	}
	return &Webcam{
		device: device,
		logger: logger.With("component", "capture.webcam", "device", device),
	}
}

// Open implements Camera.
func (w *Webcam) Open(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap != nil {
		return ErrAlreadyOpen
	}

	cap, err := gocv.OpenVideoCapture(w.device)
	if err != nil {
		return fmt.Errorf("capture: open device %d: %w", w.device, ErrUnavailable)
	}
	if !cap.IsOpened() {
		cap.Close()
		return fmt.Errorf("capture: device %d refused: %w", w.device, ErrNotAllowed)
	}

	w.cap = cap
	w.logger.Info("camera acquired")
	return nil
}

// Close implements Camera.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return nil
	}

	err := w.cap.Close()
	w.cap = nil
	w.logger.Info("camera released")
	if err != nil {
		return fmt.Errorf("capture: close device %d: %w", w.device, err)
	}
	return nil
}

// Opened implements Camera.
func (w *Webcam) Opened() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cap != nil
}

// Ensure Webcam implements Camera.
var _ Camera = (*Webcam)(nil)
