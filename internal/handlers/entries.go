package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/sanitize"
	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// EntryHandler handles journal entry routes
type EntryHandler struct {
	DB        *gorm.DB
	Sanitizer *sanitize.Sanitizer
	Log       *zap.Logger
}

// List handles GET /api/entries
// @Summary List journal entries
// @Description Get all entries for the logged-in user, keyed by date
// @Tags Entries
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "auth.session")
	}

	entries, err := services.ListEntries(h.DB, uid)
	if err != nil {
		h.Log.Error("list entries failed", zap.Uint64("user_id", uid), zap.Error(err))
		return utils.ErrorResponse(c, "Failed to load entries", fiber.StatusInternalServerError, "entries.list")
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

// Save handles POST /api/save
// @Summary Save a journal entry
// @Description Sanitize and persist an entry, replacing any entry on the same date
// @Tags Entries
// @Accept json
// @Produce json
// @Param body body object true "Entry payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /save [post]
func (h *EntryHandler) Save(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "auth.session")
	}

	var raw any
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.ErrorResponse(c, "Invalid entry data", fiber.StatusBadRequest, "entries.validation")
	}

	clean := h.Sanitizer.Entry(raw)
	if clean == nil {
		return utils.ErrorResponse(c, "Invalid entry data", fiber.StatusBadRequest, "entries.validation")
	}

	date, _ := clean["date"].(string)
	if date == "" {
		return utils.ErrorResponse(c, "Invalid entry data", fiber.StatusBadRequest, "entries.validation")
	}

	saved, err := services.SaveEntry(h.DB, uid, date, clean)
	if err != nil {
		h.Log.Error("save entry failed",
			zap.Uint64("user_id", uid),
			zap.String("date", date),
			zap.Error(err))
		return utils.ErrorResponse(c, "Failed to save entry", fiber.StatusInternalServerError, "entries.save")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"entry":  saved,
	})
}

// Delete handles DELETE /api/delete/:date
// @Summary Delete a journal entry
// @Tags Entries
// @Produce json
// @Param date path string true "Entry date (YYYY-MM-DD)"
// @Success 200 {object} utils.StatusResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /delete/{date} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "auth.session")
	}

	date := c.Params("date")
	if !sanitize.ValidDate(date) {
		return utils.ErrorResponse(c, "Invalid date format", fiber.StatusBadRequest, "entries.validation")
	}

	if err := services.DeleteEntry(h.DB, uid, date); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No entry for date '%s'", date))
		}
		h.Log.Error("delete entry failed",
			zap.Uint64("user_id", uid),
			zap.String("date", date),
			zap.Error(err))
		return utils.ErrorResponse(c, "Failed to delete entry", fiber.StatusInternalServerError, "entries.delete")
	}

	return utils.StatusResponse(c, "Entry deleted")
}
