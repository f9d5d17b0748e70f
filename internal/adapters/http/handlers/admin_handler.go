package handlers

import (
	"errors"
	"strconv"

	"bloodlink-api/internal/core/services"
	"bloodlink-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin account management endpoints (Manager role only)
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Create handles admin account creation
// @Summary Create admin
// @Description Create a new admin account (Manager role only)
// @Tags Admins
// @Accept json
// @Produce json
// @Param body body services.CreateAdminInput true "Admin details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /admin/add-admin [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrBankNotFound):
			return response.BadRequest(c, "Blood bank not found")
		case errors.Is(err, services.ErrUsernameTaken):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to create admin")
		}
	}

	return response.Created(c, "Admin created successfully", admin)
}

// List handles admin account listing
// @Summary List admins
// @Description List all admin accounts (Manager role only)
// @Tags Admins
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/list [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list admins")
	}

	return response.Success(c, "Admins retrieved successfully", admins)
}

// Update handles admin account update
// @Summary Update admin
// @Description Update an admin account (Manager role only)
// @Tags Admins
// @Accept json
// @Produce json
// @Param id path int true "Admin ID"
// @Param body body services.UpdateAdminInput true "Mutable admin fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /admin/update-admin/{id} [patch]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	var input services.UpdateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Admin not found")
		case errors.Is(err, services.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrBankNotFound):
			return response.BadRequest(c, "Blood bank not found")
		case errors.Is(err, services.ErrUsernameTaken):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to update admin")
		}
	}

	return response.Success(c, "Admin updated successfully", admin)
}

// Delete handles admin account deletion
// @Summary Delete admin
// @Description Delete an admin account; self-deletion is not allowed (Manager role only)
// @Tags Admins
// @Accept json
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/delete-admin/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	adminID, ok := actorAdminID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.adminService.Delete(c.Context(), uint(id), adminID); err != nil {
		switch {
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "You cannot delete your own account")
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Admin not found")
		default:
			return response.InternalServerError(c, "Failed to delete admin")
		}
	}

	return response.Success(c, "Admin deleted successfully", nil)
}
