package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// ExportHandler handles journal export downloads
type ExportHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// JSON handles GET /api/export/json
// @Summary Export the journal as JSON
// @Tags Export
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/json [get]
func (h *ExportHandler) JSON(c *fiber.Ctx) error {
	return h.export(c, "json", "application/json", services.BuildJSON)
}

// CSV handles GET /api/export/csv
// @Summary Export the journal as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	return h.export(c, "csv", "text/csv; charset=utf-8", services.BuildCSV)
}

// PDF handles GET /api/export/pdf
// @Summary Export the journal as PDF
// @Tags Export
// @Produce application/pdf
// @Success 200 {string} string
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	return h.export(c, "pdf", "application/pdf", services.BuildPDF)
}

func (h *ExportHandler) export(c *fiber.Ctx, format, contentType string, build func([]map[string]any) ([]byte, error)) error {
	uid, ok := userID(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "auth.session")
	}

	entries, err := services.ListEntriesOrdered(h.DB, uid)
	if err != nil {
		h.Log.Error("export failed loading entries",
			zap.Uint64("user_id", uid),
			zap.String("format", format),
			zap.Error(err))
		return utils.ErrorResponse(c, "Failed to load entries", fiber.StatusInternalServerError, "export."+format)
	}

	payload, err := build(entries)
	if err != nil {
		h.Log.Error("export build failed",
			zap.Uint64("user_id", uid),
			zap.String("format", format),
			zap.Error(err))
		return utils.ErrorResponse(c, "Failed to build export", fiber.StatusInternalServerError, "export."+format)
	}

	filename := fmt.Sprintf("journal_export_%s.%s", time.Now().Format("20060102"), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(payload)
}
