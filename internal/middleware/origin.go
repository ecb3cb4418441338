package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/types"
)

// OriginCheck rejects cross-origin mutating requests in production. Reads and
// the login route itself are exempt; requests without an Origin or Referer
// header (curl, same-site fetches) pass through.
func OriginCheck(production bool, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if !production || c.Path() == "/api/login" {
			return c.Next()
		}

		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			origin = c.Get(fiber.HeaderReferer)
		}
		if origin == "" {
			return c.Next()
		}

		parsed, err := url.Parse(origin)
		if err == nil && parsed.Host != "" && parsed.Host != c.Hostname() {
			log.Warn("cross-origin write rejected",
				zap.String("origin", origin),
				zap.String("host", c.Hostname()))
			return types.Forbidden("Invalid request origin", "auth.origin")
		}

		return c.Next()
	}
}
