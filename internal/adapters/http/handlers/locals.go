package handlers

import "github.com/gofiber/fiber/v2"

// actorAdminID reads the authenticated admin id set by the auth middleware.
func actorAdminID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("adminID").(uint)
	return id, ok
}

// actorBankID reads the authenticated admin's bank id set by the auth middleware.
func actorBankID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("bankID").(uint)
	return id, ok
}
