package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts the "id" route parameter as a positive uint. On failure it
// writes a 400 JSON response and reports false; the handler must return nil
// so the committed response is not overwritten.
func (s *Server) parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid post ID"))
		return 0, false
	}
	return uint(id), true
}

// callerID returns the authenticated account ID attached by the guard.
func callerID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}
