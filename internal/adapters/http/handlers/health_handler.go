package handlers

import (
	"nagari-society/internal/config"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check returns the service health status
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	return response.Success(c, "Service is healthy", fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"mode":     config.AppConfig.AppMode,
	})
}
