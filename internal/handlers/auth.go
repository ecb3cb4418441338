package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/config"
	"github.com/breaching/moodix/internal/middleware"
	"github.com/breaching/moodix/internal/sanitize"
	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// maxCredentialLength bounds login fields before any processing happens.
const maxCredentialLength = 100

// AuthHandler handles session authentication routes
type AuthHandler struct {
	DB        *gorm.DB
	Store     *session.Store
	Config    *config.Config
	Sanitizer *sanitize.Sanitizer
	Log       *zap.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login
// @Summary Authenticate a user
// @Description Verify credentials and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "auth.validation.input")
	}

	if len(body.Username) > maxCredentialLength || len(body.Password) > maxCredentialLength {
		return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, "auth.credentials")
	}

	username := h.Sanitizer.Text(body.Username, maxCredentialLength)
	if username == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Username and password are required", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.Authenticate(h.DB, h.Config, h.Log, username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountDisabled):
			return utils.ErrorResponse(c, "Account is disabled", fiber.StatusForbidden, "auth.disabled")
		case errors.Is(err, services.ErrInvalidCredentials):
			return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, "auth.credentials")
		default:
			return utils.ErrorResponse(c, "Authentication failed", fiber.StatusInternalServerError, "auth.internal")
		}
	}

	sess, err := h.Store.Get(c)
	if err != nil {
		return utils.ErrorResponse(c, "Session error", fiber.StatusInternalServerError, "auth.session")
	}
	if err := sess.Regenerate(); err != nil {
		return utils.ErrorResponse(c, "Session error", fiber.StatusInternalServerError, "auth.session")
	}
	sess.Set(middleware.SessionUserID, user.UserID)
	sess.Set(middleware.SessionUsername, user.Username)
	sess.Set(middleware.SessionIsAdmin, user.IsAdmin)
	if err := sess.Save(); err != nil {
		return utils.ErrorResponse(c, "Session error", fiber.StatusInternalServerError, "auth.session")
	}

	h.Log.Info("user logged in",
		zap.Uint64("user_id", user.UserID),
		zap.String("username", user.Username))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"user": fiber.Map{
			"id":       user.UserID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

// Logout handles POST /api/logout
// @Summary End the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.StatusResponseStruct
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			h.Log.Warn("session destroy failed", zap.Error(err))
		}
	}
	return utils.StatusResponse(c, "Logged out")
}

// CheckAuth handles GET /api/check-auth
// @Summary Report session state
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /check-auth [get]
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"authenticated": false})
	}

	id, ok := sess.Get(middleware.SessionUserID).(uint64)
	if !ok || id == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"authenticated": false})
	}

	username, _ := sess.Get(middleware.SessionUsername).(string)
	isAdmin, _ := sess.Get(middleware.SessionIsAdmin).(bool)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"authenticated": true,
		"user": fiber.Map{
			"id":       id,
			"username": username,
			"is_admin": isAdmin,
		},
	})
}
