package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/types"
)

// Session keys written at login and read back by the auth middlewares.
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionIsAdmin  = "is_admin"
)

// Locals keys populated for downstream handlers.
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalIsAdmin  = "isAdmin"
)

// RequireLogin validates that the request carries an authenticated session
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, username, _, ok := sessionUser(store, c)
		if !ok {
			return types.Unauthorized("Not authenticated", "auth.session")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)

		return c.Next()
	}
}

// RequireAdmin validates that the session user has admin privileges
func RequireAdmin(store *session.Store, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, username, isAdmin, ok := sessionUser(store, c)
		if !ok {
			return types.Unauthorized("Not authenticated", "auth.session")
		}

		if !isAdmin {
			log.Warn("unauthorized admin access attempt",
				zap.Uint64("user_id", userID))
			return types.Forbidden("Admin privileges required", "auth.admin")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)
		c.Locals(LocalIsAdmin, true)

		return c.Next()
	}
}

// sessionUser reads the logged-in identity out of the request session.
func sessionUser(store *session.Store, c *fiber.Ctx) (uint64, string, bool, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, "", false, false
	}

	userID, ok := sess.Get(SessionUserID).(uint64)
	if !ok || userID == 0 {
		return 0, "", false, false
	}

	username, _ := sess.Get(SessionUsername).(string)
	isAdmin, _ := sess.Get(SessionIsAdmin).(bool)

	return userID, username, isAdmin, true
}
