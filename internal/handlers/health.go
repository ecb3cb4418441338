package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/config"
	"github.com/breaching/moodix/internal/services"
)

// HealthHandler handles the service health probe
type HealthHandler struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

// Check handles GET /health
// @Summary Service health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
