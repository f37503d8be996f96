package handlers

import (
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check returns service and database health
// @Summary Health check
// @Description Check API and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Service unhealthy",
			Error:   "database unreachable",
		})
	}

	return response.Success(c, "Service healthy", fiber.Map{
		"status":   "ok",
		"database": "connected",
	})
}
