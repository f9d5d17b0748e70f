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

// RequestHandler handles blood request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Add handles blood request creation
// @Summary Create request
// @Description Create a blood request; the initial status is always Pending
// @Tags Requests
// @Accept json
// @Produce json
// @Param body body services.AddRequestInput true "Request details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/add-request [post]
func (h *RequestHandler) Add(c *fiber.Ctx) error {
	adminID, ok := actorAdminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.AddRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.requestService.Add(c.Context(), adminID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAdminNotFound):
			return response.Unauthorized(c, "Admin account no longer exists")
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		case errors.Is(err, services.ErrRecipientBankMismatch):
			return response.Forbidden(c, "Recipient belongs to a different blood bank")
		case errors.Is(err, services.ErrRequestBankMismatch):
			return response.Forbidden(c, "Request can only target your own blood bank")
		default:
			return response.InternalServerError(c, "Failed to create request")
		}
	}

	return response.Created(c, "Request created successfully", request)
}

// UpdateStatusRequest represents the status update body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles request lifecycle transitions
// @Summary Update request status
// @Description Transition a Pending request to Completed or Rejected; completing decrements stock
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /admin/update-request-status/{id} [put]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	adminID, ok := actorAdminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body UpdateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.requestService.UpdateStatus(c.Context(), uint(id), adminID, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestStatusUnknown):
			return response.BadRequest(c, "Status must be Pending, Completed or Rejected")
		case errors.Is(err, services.ErrAdminNotFound):
			return response.Unauthorized(c, "Admin account no longer exists")
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Request not found")
		case errors.Is(err, services.ErrRequestBankMismatch):
			return response.Forbidden(c, "Request belongs to a different blood bank")
		case errors.Is(err, services.ErrRequestTransition):
			return response.UnprocessableEntity(c, "Request status can only move from Pending to Completed or Rejected")
		case errors.Is(err, domain.ErrStockNotFound):
			return response.Conflict(c, "No stock record for this blood group at the bank")
		case errors.Is(err, services.ErrInsufficientStock):
			return response.Conflict(c, "Insufficient blood stock to complete the request")
		case errors.Is(err, services.ErrConcurrentStatusChange):
			return response.Conflict(c, "Request status was changed by another admin, refresh and retry")
		default:
			return response.InternalServerError(c, "Failed to update request status")
		}
	}

	return response.Success(c, "Request status updated successfully", request)
}

// List handles request listing
// @Summary List requests
// @Description List requests across all banks with pagination
// @Tags Requests
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.requestService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "Requests retrieved successfully",
		pagination.NewResponse(result.Requests, params, result.Total))
}

// Details handles request detail lookup
// @Summary Request details
// @Description Detail rows for one request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/request-details/{id} [get]
func (h *RequestHandler) Details(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	rows, err := h.requestService.Details(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch request details")
	}

	if len(rows) == 0 {
		return response.Success(c, "No details found for this request", []interface{}{})
	}

	return response.Success(c, "Request details retrieved successfully", rows)
}
