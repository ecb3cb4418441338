package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/config"
	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// BackupHandler handles manual database backup requests
type BackupHandler struct {
	Config *config.Config
	Log    *zap.Logger
}

// Create handles POST /api/backup/create
// @Summary Create a database backup
// @Description Copy the database file into the backup directory and prune old copies
// @Tags Backup
// @Produce json
// @Success 200 {object} utils.StatusResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Failure 501 {object} utils.ErrorResponseStruct
// @Router /backup/create [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	if err := services.CreateBackup(h.Config, h.Log); err != nil {
		if errors.Is(err, services.ErrBackupUnsupported) {
			return utils.ErrorResponse(c, "Backups are only supported for sqlite databases", fiber.StatusNotImplemented, "backup.unsupported")
		}
		h.Log.Error("manual backup failed", zap.Error(err))
		return utils.ErrorResponse(c, "Backup failed", fiber.StatusInternalServerError, "backup.create")
	}

	return utils.StatusResponse(c, "Backup created")
}
