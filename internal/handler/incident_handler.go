package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/service"
)

type IncidentHandler struct {
	service service.IncidentService
}

func NewIncidentHandler(s service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: s}
}

// GetIncidents returns a paginated incident list
// GET /api/incidents
func (h *IncidentHandler) GetIncidents(c *fiber.Ctx) error {
	page, err := h.service.GetIncidents(pageRequest(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch incidents"})
	}
	return c.JSON(page)
}

// GetIncidentsForMap returns incidents inside a lat/lng bounding box
// GET /api/incidents/map?north=&south=&east=&west=
func (h *IncidentHandler) GetIncidentsForMap(c *fiber.Ctx) error {
	var bounds model.MapBounds
	if err := c.QueryParser(&bounds); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid bounds"})
	}

	incidents, err := h.service.GetIncidentsInBounds(bounds)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBounds) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch incidents"})
	}
	return c.JSON(incidents)
}

// GetIncident returns a single incident
// GET /api/incidents/:id
func (h *IncidentHandler) GetIncident(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid incident ID"})
	}

	incident, err := h.service.GetIncident(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(incident)
}

// CreateIncident records a new incident
// POST /api/incidents
func (h *IncidentHandler) CreateIncident(c *fiber.Ctx) error {
	var incident model.Incident
	if err := c.BodyParser(&incident); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateIncident(c.Context(), &incident, getUserID(c))
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(created)
}

// UpdateIncident edits an incident
// PUT /api/incidents/:id
func (h *IncidentHandler) UpdateIncident(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid incident ID"})
	}

	var details model.Incident
	if err := c.BodyParser(&details); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateIncident(id, &details, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrIncidentNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(updated)
}

// DeleteIncident removes an incident
// DELETE /api/incidents/:id
func (h *IncidentHandler) DeleteIncident(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid incident ID"})
	}

	if err := h.service.DeleteIncident(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Incident deleted"})
}
