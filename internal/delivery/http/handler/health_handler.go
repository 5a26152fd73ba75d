package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthChecker is anything whose liveness the health endpoint reports.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db     HealthChecker
	cache  HealthChecker
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db, cache HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Description Reports service health and the state of its dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	deps := fiber.Map{
		"postgres": "up",
		"redis":    "up",
	}

	if err := h.db.Health(ctx); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		deps["postgres"] = "down"
		status = "unhealthy"
		code = fiber.StatusServiceUnavailable
	}
	if err := h.cache.Health(ctx); err != nil {
		h.logger.Error("Redis health check failed", zap.Error(err))
		deps["redis"] = "down"
		status = "unhealthy"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now().UTC(),
	})
}
