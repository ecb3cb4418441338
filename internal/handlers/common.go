package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/breaching/moodix/internal/middleware"
)

// userID extracts the authenticated user ID set by the session middleware.
func userID(c *fiber.Ctx) (uint64, bool) {
	id, ok := c.Locals(middleware.LocalUserID).(uint64)
	return id, ok && id != 0
}
