package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/models"
	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// AdminHandler handles user administration routes
type AdminHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func userJSON(u models.User) fiber.Map {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	return fiber.Map{
		"id":         u.UserID,
		"username":   u.Username,
		"email":      email,
		"is_admin":   u.IsAdmin,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
	}
}

func paramUserID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// userInputError maps account validation failures to HTTP responses.
func userInputError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUsernameLength),
		errors.Is(err, services.ErrPasswordLength):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "admin.validation")
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "admin.conflict")
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, "User not found")
	default:
		return utils.ErrorResponse(c, "User operation failed", fiber.StatusInternalServerError, "admin.users")
	}
}

// ListUsers handles GET /api/admin/users
// @Summary List all user accounts
// @Tags Admin
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		return utils.ErrorResponse(c, "Failed to load users", fiber.StatusInternalServerError, "admin.users")
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetUser handles GET /api/admin/users/:id
// @Summary Get one user account
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user ID", fiber.StatusBadRequest, "admin.validation")
	}

	user, entryCount, err := services.GetUser(h.DB, id)
	if err != nil {
		return userInputError(c, err)
	}

	out := userJSON(*user)
	out["entry_count"] = entryCount
	return c.Status(fiber.StatusOK).JSON(out)
}

// CreateUser handles POST /api/admin/users
// @Summary Create a user account
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body services.UserInput true "Account fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "admin.validation")
	}

	user, err := services.CreateUser(h.DB, in)
	if err != nil {
		return userInputError(c, err)
	}

	h.Log.Info("user created",
		zap.Uint64("user_id", user.UserID),
		zap.String("username", user.Username))

	return c.Status(fiber.StatusCreated).JSON(userJSON(*user))
}

// UpdateUser handles PUT /api/admin/users/:id
// @Summary Update a user account
// @Description Admins cannot disable or de-admin their own account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UserInput true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user ID", fiber.StatusBadRequest, "admin.validation")
	}

	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "admin.validation")
	}

	if self, ok := userID(c); ok && self == id {
		if in.IsActive != nil && !*in.IsActive {
			return utils.ErrorResponse(c, "Cannot disable your own account", fiber.StatusBadRequest, "admin.self")
		}
		if in.IsAdmin != nil && !*in.IsAdmin {
			return utils.ErrorResponse(c, "Cannot remove your own admin privileges", fiber.StatusBadRequest, "admin.self")
		}
	}

	user, err := services.UpdateUser(h.DB, id, in)
	if err != nil {
		return userInputError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(userJSON(*user))
}

// DeleteUser handles DELETE /api/admin/users/:id
// @Summary Delete a user account and all its data
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.StatusResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user ID", fiber.StatusBadRequest, "admin.validation")
	}

	if self, ok := userID(c); ok && self == id {
		return utils.ErrorResponse(c, "Cannot delete your own account", fiber.StatusBadRequest, "admin.self")
	}

	username, err := services.DeleteUser(h.DB, id)
	if err != nil {
		return userInputError(c, err)
	}

	h.Log.Info("user deleted",
		zap.Uint64("user_id", id),
		zap.String("username", username))

	return utils.StatusResponse(c, "User '"+username+"' deleted")
}

// ResetPassword handles POST /api/admin/users/:id/reset-password
// @Summary Reset a user's password
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body object true "New password"
// @Success 200 {object} utils.StatusResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id}/reset-password [post]
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := paramUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user ID", fiber.StatusBadRequest, "admin.validation")
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "admin.validation")
	}

	user, err := services.ResetPassword(h.DB, id, body.Password)
	if err != nil {
		return userInputError(c, err)
	}

	h.Log.Info("password reset",
		zap.Uint64("user_id", user.UserID),
		zap.String("username", user.Username))

	return utils.StatusResponse(c, "Password updated")
}
