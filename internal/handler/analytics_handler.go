package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-safecity-ws/internal/service"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetStatistics returns the dashboard crime overview
// GET /api/analytics/crime-statistics
func (h *AnalyticsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.service.GetCrimeStatistics()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}
	return c.JSON(stats)
}

// GetTrends returns incident counts per day for a timeframe
// GET /api/analytics/crime-trends?timeframe=weekly|monthly|yearly
func (h *AnalyticsHandler) GetTrends(c *fiber.Ctx) error {
	trends, err := h.service.GetCrimeTrends(c.Query("timeframe"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownTimeframe) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute trends"})
	}
	return c.JSON(trends)
}

// GetPredictiveAnalysis returns a risk estimate for an area
// GET /api/analytics/predictive?area=
func (h *AnalyticsHandler) GetPredictiveAnalysis(c *fiber.Ctx) error {
	area := c.Query("area")
	if area == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Area is required"})
	}

	assessment, err := h.service.GetPredictiveAnalysis(area)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute analysis"})
	}
	return c.JSON(assessment)
}
