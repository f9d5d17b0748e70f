package handlers

import (
	"errors"
	"strconv"

	"bloodlink-api/internal/core/services"
	"bloodlink-api/internal/pkg/pagination"
	"bloodlink-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonorHandler handles donor endpoints
type DonorHandler struct {
	donorService *services.DonorService
}

// NewDonorHandler creates a new donor handler
func NewDonorHandler(donorService *services.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donorService}
}

// Register handles public donor registration
// @Summary Register donor
// @Description Register a new donor (public, no authentication)
// @Tags Donors
// @Accept json
// @Produce json
// @Param body body services.RegisterDonorInput true "Donor details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /donor [post]
func (h *DonorHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterDonorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donor, err := h.donorService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrBankNotFound):
			return response.BadRequest(c, "Blood bank not found")
		case errors.Is(err, services.ErrDonorDuplicate):
			return response.Conflict(c, "Donor with this contact or email already exists")
		default:
			return response.InternalServerError(c, "Failed to register donor")
		}
	}

	return response.Created(c, "Donor registered successfully", donor)
}

// List handles donor listing
// @Summary List donors
// @Description List donors across all banks with pagination
// @Tags Donors
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/manage-donors [get]
func (h *DonorHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.donorService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donors")
	}

	return response.Success(c, "Donors retrieved successfully",
		pagination.NewResponse(result.Donors, params, result.Total))
}

// History handles donor donation history
// @Summary Donor history
// @Description Donation history of one donor, newest first
// @Tags Donors
// @Accept json
// @Produce json
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/donor-history/{id} [get]
func (h *DonorHandler) History(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	rows, err := h.donorService.History(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch donor history")
	}

	if len(rows) == 0 {
		return response.Success(c, "No donation history found for this donor", []interface{}{})
	}

	return response.Success(c, "Donor history retrieved successfully", rows)
}

// Update handles donor update
// @Summary Update donor
// @Description Update a donor's contact details (same-bank admins only)
// @Tags Donors
// @Accept json
// @Produce json
// @Param id path int true "Donor ID"
// @Param body body services.UpdateDonorInput true "Mutable donor fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/update-donor/{id} [put]
func (h *DonorHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	bankID, ok := actorBankID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateDonorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donor, err := h.donorService.Update(c.Context(), uint(id), bankID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrCrossBankWrite):
			return response.Forbidden(c, "Donor belongs to a different blood bank")
		case errors.Is(err, services.ErrBankReassignment):
			return response.Forbidden(c, "Cannot reassign donor to another blood bank")
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update donor")
		}
	}

	return response.Success(c, "Donor updated successfully", donor)
}

// Delete handles donor deletion
// @Summary Delete donor
// @Description Delete a donor (same-bank admins only)
// @Tags Donors
// @Accept json
// @Produce json
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/delete-donor/{id} [delete]
func (h *DonorHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	bankID, ok := actorBankID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.donorService.Delete(c.Context(), uint(id), bankID); err != nil {
		switch {
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrCrossBankWrite):
			return response.Forbidden(c, "Donor belongs to a different blood bank")
		default:
			return response.InternalServerError(c, "Failed to delete donor")
		}
	}

	return response.Success(c, "Donor deleted successfully", nil)
}
