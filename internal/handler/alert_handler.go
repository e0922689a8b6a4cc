package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/service"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(s service.AlertService) *AlertHandler {
	return &AlertHandler{service: s}
}

// GetAlerts returns alerts, optionally filtered by type or read state
// GET /api/alerts?type=&read=
func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	if t := c.Query("type"); t != "" {
		alerts, err := h.service.GetAlertsByType(model.AlertType(t))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch alerts"})
		}
		return c.JSON(alerts)
	}

	if read := c.Query("read"); read != "" {
		isRead, err := strconv.ParseBool(read)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid read filter"})
		}
		alerts, err := h.service.GetAlertsByRead(isRead)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch alerts"})
		}
		return c.JSON(alerts)
	}

	alerts, err := h.service.GetAlerts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch alerts"})
	}
	return c.JSON(alerts)
}

// GetMyAlerts returns the caller's own alerts
// GET /api/alerts/mine
func (h *AlertHandler) GetMyAlerts(c *fiber.Ctx) error {
	id, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	alerts, err := h.service.GetAlertsByUser(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch alerts"})
	}
	return c.JSON(alerts)
}

// CreateAlert publishes a new alert
// POST /api/alerts
func (h *AlertHandler) CreateAlert(c *fiber.Ctx) error {
	var alert model.Alert
	if err := c.BodyParser(&alert); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateAlert(&alert, getUserID(c))
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(created)
}

// MarkAlertRead marks an alert as read
// PUT /api/alerts/:id/read
func (h *AlertHandler) MarkAlertRead(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	alert, err := h.service.MarkAsRead(id)
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(alert)
}

// DeleteAlert removes an alert
// DELETE /api/alerts/:id
func (h *AlertHandler) DeleteAlert(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	if err := h.service.DeleteAlert(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Alert deleted"})
}
