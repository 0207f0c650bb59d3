// Package web exposes the sentinel HTTP API and live status feed.
package web

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/alert"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/detection"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/hub"
)

// Detector is the slice of the detection supervisor the API needs.
type Detector interface {
	Start(ctx context.Context, settings *detection.Settings) detection.Status
	Stop()
	Status() detection.Status
	Active() bool
}

// Event is one entry on the live status feed.
type Event struct {
	Event   string            `json:"event"` // status, warning, trigger
	Status  *detection.Status `json:"status,omitempty"`
	Channel string            `json:"channel,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Server is the sentinel API server
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	detector Detector
	worker   *alert.Worker

	// Last applied settings, for the status endpoint
	mu       sync.RWMutex
	settings *detection.Settings

	// Hub for live status broadcast
	statusHub *hub.Hub
}

// NewServer creates the API server around a detector and the alert worker.
func NewServer(port string, detector Detector, worker *alert.Worker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		port:      port,
		logger:    logger.With("component", "web"),
		detector:  detector,
		worker:    worker,
		statusHub: hub.New("status", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Sentinel",
		DisableStartupMessage: true,
	})

	// CORS for the companion app during development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/detection/start", s.handleStart)
	api.Post("/detection/stop", s.handleStop)
	api.Get("/detection/status", s.handleDetectionStatus)
	api.Post("/alert", s.handleAlert)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// App returns the underlying Fiber app. Exposed so the device bridge can
// register its routes on the same listener.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hub loop and listens. Blocks until shutdown.
func (s *Server) Start() error {
	go s.statusHub.Run()
	s.logger.Info("listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// BroadcastStatus pushes a status snapshot to status feed subscribers.
func (s *Server) BroadcastStatus(st detection.Status) {
	_ = s.statusHub.BroadcastJSON(Event{Event: "status", Status: &st})
}

// BroadcastWarning pushes a channel warning to status feed subscribers.
func (s *Server) BroadcastWarning(w detection.Warning) {
	ev := Event{Event: "warning", Message: w.Err.Error()}
	if w.Channel != "" {
		ev.Channel = string(w.Channel)
	}
	_ = s.statusHub.BroadcastJSON(ev)
}

// BroadcastTrigger announces an emergency trigger on the status feed.
// The trigger itself carries no payload.
func (s *Server) BroadcastTrigger() {
	_ = s.statusHub.BroadcastJSON(Event{Event: "trigger"})
}

// handleStatusWS subscribes one client to the live status feed.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	client := hub.NewClient(s.statusHub, c)
	client.Run()
}
