package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetReports returns a paginated report list
// GET /api/reports
func (h *ReportHandler) GetReports(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		page, err := h.service.GetReportsByStatus(model.ReportStatus(status), pageRequest(c))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reports"})
		}
		return c.JSON(page)
	}

	page, err := h.service.GetReports(pageRequest(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(page)
}

// GetReport returns a single report
// GET /api/reports/:id
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	report, err := h.service.GetReport(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// GetMyReports returns the caller's own reports
// GET /api/reports/mine
func (h *ReportHandler) GetMyReports(c *fiber.Ctx) error {
	reports, err := h.service.GetReportsByUser(getUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(reports)
}

// CreateReport files a new report
// POST /api/reports
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var report model.Report
	if err := c.BodyParser(&report); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateReport(&report, getUserID(c))
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(created)
}

// CreateVoiceReport files a report from an audio recording.
// Multipart form: "audio" file part + "metadata" JSON part.
// POST /api/reports/voice
func (h *ReportHandler) CreateVoiceReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing audio file"})
	}

	var report model.Report
	if meta := c.FormValue("metadata"); meta != "" {
		if err := json.Unmarshal([]byte(meta), &report); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid metadata JSON"})
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read audio file"})
	}
	defer file.Close()

	created, err := h.service.CreateVoiceReport(c.Context(), file, &report, getUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(created)
}

// UpdateReport edits an existing report
// PUT /api/reports/:id
func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	var details model.Report
	if err := c.BodyParser(&details); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateReport(id, &details, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(updated)
}

// ApproveReport marks a report approved
// PUT /api/reports/:id/approve
func (h *ReportHandler) ApproveReport(c *fiber.Ctx) error {
	return h.setStatus(c, h.service.ApproveReport)
}

// RejectReport marks a report rejected
// PUT /api/reports/:id/reject
func (h *ReportHandler) RejectReport(c *fiber.Ctx) error {
	return h.setStatus(c, h.service.RejectReport)
}

func (h *ReportHandler) setStatus(c *fiber.Ctx, op func(id uuid.UUID, updatedBy string) (*model.Report, error)) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	report, err := op(id, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// DeleteReport removes a report
// DELETE /api/reports/:id
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	if err := h.service.DeleteReport(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Report deleted"})
}
