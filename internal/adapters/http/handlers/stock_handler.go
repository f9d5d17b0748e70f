package handlers

import (
	"bloodlink-api/internal/core/services"
	"bloodlink-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StockHandler handles blood stock endpoints
type StockHandler struct {
	stockService *services.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles the public stock view
// @Summary List blood stock
// @Description Stock levels per bank and blood group, with bank name and location
// @Tags Stock
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /bloodstock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	rows, err := h.stockService.ListWithBank(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch blood stock")
	}

	return response.Success(c, "Blood stock retrieved successfully", rows)
}

// ListAdmin handles the admin stock view
// @Summary List blood stock (admin view)
// @Description Stock levels per bank and blood group with bank name only
// @Tags Stock
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/bloodstock [get]
func (h *StockHandler) ListAdmin(c *fiber.Ctx) error {
	rows, err := h.stockService.ListWithBank(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch blood stock")
	}

	view := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		view = append(view, fiber.Map{
			"bankId":         row.BankID,
			"bloodGroup":     row.BloodGroup,
			"unitsAvailable": row.UnitsAvailable,
			"bankName":       row.BankName,
		})
	}

	return response.Success(c, "Blood stock retrieved successfully", view)
}
