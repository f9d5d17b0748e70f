package handlers

import (
	"errors"
	"strconv"

	"bloodlink-api/internal/core/domain"
	"bloodlink-api/internal/core/services"
	"bloodlink-api/internal/pkg/pagination"
	"bloodlink-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Add handles donation recording
// @Summary Record donation
// @Description Record a donation and increment the bank's stock
// @Tags Donations
// @Accept json
// @Produce json
// @Param body body services.AddDonationInput true "Donation details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /admin/add-donation [post]
func (h *DonationHandler) Add(c *fiber.Ctx) error {
	adminID, ok := actorAdminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.AddDonationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donation, err := h.donationService.Add(c.Context(), adminID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAdminNotFound):
			return response.Unauthorized(c, "Admin account no longer exists")
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrDonorBankMismatch):
			return response.Forbidden(c, "Donor belongs to a different blood bank")
		case errors.Is(err, services.ErrDonationBankMismatch):
			return response.Forbidden(c, "Donation can only target your own blood bank")
		case errors.Is(err, domain.ErrStockNotFound):
			return response.Conflict(c, "No stock record for this blood group at the bank")
		default:
			return response.InternalServerError(c, "Failed to record donation")
		}
	}

	return response.Created(c, "Donation recorded successfully", donation)
}

// List handles donation listing
// @Summary List donations
// @Description List donations across all banks with pagination
// @Tags Donations
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.donationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully",
		pagination.NewResponse(result.Donations, params, result.Total))
}

// Details handles donation detail lookup
// @Summary Donation details
// @Description Detail rows for one donation
// @Tags Donations
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/donation-details/{id} [get]
func (h *DonationHandler) Details(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	rows, err := h.donationService.Details(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch donation details")
	}

	if len(rows) == 0 {
		return response.Success(c, "No details found for this donation", []interface{}{})
	}

	return response.Success(c, "Donation details retrieved successfully", rows)
}
