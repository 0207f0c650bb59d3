package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/alert"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/detection"
)

// handleStatus returns the overall daemon state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()

	return c.JSON(fiber.Map{
		"active":   s.detector.Active(),
		"channels": s.detector.Status(),
		"settings": settings,
	})
}

// handleStart starts a detection session with the posted settings.
// A missing body is passed through as nil settings: the supervisor refuses
// it and the response carries the all-false status.
func (s *Server) handleStart(c *fiber.Ctx) error {
	var settings *detection.Settings
	if len(c.Body()) > 0 {
		settings = new(detection.Settings)
		if err := c.BodyParser(settings); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid settings: " + err.Error(),
			})
		}
	}

	status := s.detector.Start(c.Context(), settings)

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.BroadcastStatus(status)

	if settings == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "configuration required",
			"channels": status,
		})
	}
	return c.JSON(fiber.Map{"channels": status})
}

// handleStop stops the current detection session
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.detector.Stop()

	s.mu.Lock()
	s.settings = nil
	s.mu.Unlock()

	status := s.detector.Status()
	s.BroadcastStatus(status)
	return c.JSON(fiber.Map{"channels": status})
}

// handleDetectionStatus returns the per-channel snapshot
func (s *Server) handleDetectionStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"channels": s.detector.Status()})
}

// handleAlert accepts a worker message from the companion UI.
// Fire-and-forget: the worker renders the notification asynchronously.
func (s *Server) handleAlert(c *fiber.Ctx) error {
	var msg alert.Message
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid message: " + err.Error(),
		})
	}
	if msg.Type != alert.TypeEmergencyTriggered {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown message type: " + msg.Type,
		})
	}

	s.worker.Post(msg)
	return c.SendStatus(fiber.StatusAccepted)
}
