package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/database"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service"
)

const healthTimeout = 2 * time.Second

// HealthCheck godoc
// @Summary Readiness probe
// @Description Pings the manifest database when one is configured, otherwise lists the file store.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB, docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		var err error
		if db != nil {
			err = database.Ping(ctx, db)
		} else {
			_, err = docSvc.List(ctx, 1, 0)
		}
		if err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
