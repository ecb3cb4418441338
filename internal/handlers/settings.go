package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// SettingsHandler handles user settings routes
type SettingsHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// Get handles GET /api/settings
// @Summary Get user settings
// @Description Returns stored settings, or defaults when none are stored yet
// @Tags Settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "auth.session")
	}

	settings, err := services.GetSettings(h.DB, uid)
	if err != nil {
		h.Log.Error("get settings failed", zap.Uint64("user_id", uid), zap.Error(err))
		return utils.ErrorResponse(c, "Failed to load settings", fiber.StatusInternalServerError, "settings.get")
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}

// Save handles POST /api/settings
// @Summary Save user settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body object true "Settings payload"
// @Success 200 {object} utils.StatusResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings [post]
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "auth.session")
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil || payload == nil {
		return utils.ErrorResponse(c, "Invalid settings data", fiber.StatusBadRequest, "settings.validation")
	}

	if err := services.SaveSettings(h.DB, uid, payload); err != nil {
		if errors.Is(err, services.ErrSettingsTooLarge) {
			return utils.ErrorResponse(c, "Settings payload too large", fiber.StatusRequestEntityTooLarge, "settings.validation")
		}
		h.Log.Error("save settings failed", zap.Uint64("user_id", uid), zap.Error(err))
		return utils.ErrorResponse(c, "Failed to save settings", fiber.StatusInternalServerError, "settings.save")
	}

	return utils.StatusResponse(c, "Settings saved")
}
