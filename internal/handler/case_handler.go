package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/service"
)

type CaseHandler struct {
	service service.CaseService
}

func NewCaseHandler(s service.CaseService) *CaseHandler {
	return &CaseHandler{service: s}
}

// GetCases returns a paginated case list
// GET /api/cases
func (h *CaseHandler) GetCases(c *fiber.Ctx) error {
	page, err := h.service.GetCases(pageRequest(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch cases"})
	}
	return c.JSON(page)
}

// GetCase returns a single case with its notes
// GET /api/cases/:id
func (h *CaseHandler) GetCase(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid case ID"})
	}

	caseRecord, err := h.service.GetCase(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(caseRecord)
}

// CreateCase opens a new investigation case
// POST /api/cases
func (h *CaseHandler) CreateCase(c *fiber.Ctx) error {
	var caseRecord model.Case
	if err := c.BodyParser(&caseRecord); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateCase(&caseRecord, getUserID(c))
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(created)
}

// UpdateCase edits case details, status, priority and assignment
// PUT /api/cases/:id
func (h *CaseHandler) UpdateCase(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid case ID"})
	}

	var details model.Case
	if err := c.BodyParser(&details); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateCase(id, &details, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrCaseNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(updated)
}

// AddNote appends an investigation note to a case
// POST /api/cases/:id/notes
func (h *CaseHandler) AddNote(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid case ID"})
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Note content is required"})
	}

	note, err := h.service.AddNote(id, req.Content, getUserName(c))
	if err != nil {
		if errors.Is(err, service.ErrCaseNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(note)
}

// DeleteCase removes a case
// DELETE /api/cases/:id
func (h *CaseHandler) DeleteCase(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid case ID"})
	}

	if err := h.service.DeleteCase(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Case deleted"})
}
