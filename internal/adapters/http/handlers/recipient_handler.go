package handlers

import (
	"errors"
	"strconv"

	"bloodlink-api/internal/core/services"
	"bloodlink-api/internal/pkg/pagination"
	"bloodlink-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RecipientHandler handles recipient endpoints
type RecipientHandler struct {
	recipientService *services.RecipientService
}

// NewRecipientHandler creates a new recipient handler
func NewRecipientHandler(recipientService *services.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipientService: recipientService}
}

// Register handles public recipient registration
// @Summary Register recipient
// @Description Register a new recipient (public, no authentication)
// @Tags Recipients
// @Accept json
// @Produce json
// @Param body body services.RegisterRecipientInput true "Recipient details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /recipient [post]
func (h *RecipientHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterRecipientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	recipient, err := h.recipientService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrBankNotFound):
			return response.BadRequest(c, "Blood bank not found")
		case errors.Is(err, services.ErrRecipientDuplicate):
			return response.Conflict(c, "Recipient with this contact or email already exists")
		default:
			return response.InternalServerError(c, "Failed to register recipient")
		}
	}

	return response.Created(c, "Recipient registered successfully", recipient)
}

// List handles recipient listing
// @Summary List recipients
// @Description List recipients across all banks with pagination
// @Tags Recipients
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/manage-recipients [get]
func (h *RecipientHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.recipientService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list recipients")
	}

	return response.Success(c, "Recipients retrieved successfully",
		pagination.NewResponse(result.Recipients, params, result.Total))
}

// History handles recipient request history
// @Summary Recipient history
// @Description Request history of one recipient, newest first
// @Tags Recipients
// @Accept json
// @Produce json
// @Param id path int true "Recipient ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/recipient-history/{id} [get]
func (h *RecipientHandler) History(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	rows, err := h.recipientService.History(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch recipient history")
	}

	if len(rows) == 0 {
		return response.Success(c, "No request history found for this recipient", []interface{}{})
	}

	return response.Success(c, "Recipient history retrieved successfully", rows)
}

// Update handles recipient update
// @Summary Update recipient
// @Description Update a recipient's contact details (same-bank admins only)
// @Tags Recipients
// @Accept json
// @Produce json
// @Param id path int true "Recipient ID"
// @Param body body services.UpdateRecipientInput true "Mutable recipient fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/update-recipient/{id} [put]
func (h *RecipientHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	bankID, ok := actorBankID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateRecipientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	recipient, err := h.recipientService.Update(c.Context(), uint(id), bankID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		case errors.Is(err, services.ErrCrossBankWrite):
			return response.Forbidden(c, "Recipient belongs to a different blood bank")
		case errors.Is(err, services.ErrBankReassignment):
			return response.Forbidden(c, "Cannot reassign recipient to another blood bank")
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update recipient")
		}
	}

	return response.Success(c, "Recipient updated successfully", recipient)
}

// Delete handles recipient deletion
// @Summary Delete recipient
// @Description Delete a recipient (same-bank admins only)
// @Tags Recipients
// @Accept json
// @Produce json
// @Param id path int true "Recipient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/delete-recipient/{id} [delete]
func (h *RecipientHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	bankID, ok := actorBankID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.recipientService.Delete(c.Context(), uint(id), bankID); err != nil {
		switch {
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		case errors.Is(err, services.ErrCrossBankWrite):
			return response.Forbidden(c, "Recipient belongs to a different blood bank")
		default:
			return response.InternalServerError(c, "Failed to delete recipient")
		}
	}

	return response.Success(c, "Recipient deleted successfully", nil)
}
