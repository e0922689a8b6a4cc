package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-safecity-ws/internal/service"
)

type SOSHandler struct {
	service service.SOSService
}

func NewSOSHandler(s service.SOSService) *SOSHandler {
	return &SOSHandler{service: s}
}

type TriggerSOSRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Details   string  `json:"details"`
}

// TriggerSOS raises an emergency alert from the caller's position
// POST /api/sos/trigger
func (h *SOSHandler) TriggerSOS(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req TriggerSOSRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	alert, err := h.service.Trigger(c.Context(), userID, req.Latitude, req.Longitude, req.Details)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLatLng) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to trigger SOS"})
	}
	return c.Status(201).JSON(alert)
}

// GetActiveSOS lists alerts still needing a response
// GET /api/sos/active
func (h *SOSHandler) GetActiveSOS(c *fiber.Ctx) error {
	alerts, err := h.service.GetActive()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch SOS alerts"})
	}
	return c.JSON(alerts)
}

// RespondSOS acknowledges an active alert as the responding officer
// POST /api/sos/:id/respond
func (h *SOSHandler) RespondSOS(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid SOS ID"})
	}

	officerID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	alert, err := h.service.Respond(id, officerID)
	if err != nil {
		if errors.Is(err, service.ErrSOSNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrSOSNotActive) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(alert)
}

// ResolveSOS closes out an alert
// PUT /api/sos/:id/resolve
func (h *SOSHandler) ResolveSOS(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid SOS ID"})
	}

	alert, err := h.service.Resolve(id)
	if err != nil {
		if errors.Is(err, service.ErrSOSNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(alert)
}
