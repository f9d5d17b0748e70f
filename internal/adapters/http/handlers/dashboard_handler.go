package handlers

import (
	"bloodlink-api/internal/core/services"
	"bloodlink-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the admin dashboard endpoint
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles dashboard summary
// @Summary Dashboard summary
// @Description Entity counts and total stock units across all banks
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard summary")
	}

	return response.Success(c, "Dashboard summary retrieved successfully", summary)
}
