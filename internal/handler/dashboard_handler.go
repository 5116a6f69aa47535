package handler

import (
	"github.com/fitstack/fitstack/internal/middleware"
	"github.com/fitstack/fitstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the aggregated counts card.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary GET /v1/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.Context(), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to build summary"})
	}
	return c.JSON(fiber.Map{"data": summary})
}
