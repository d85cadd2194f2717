package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/database"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"github.com/facet-unt/departamentos-api/utils/response"
	"go.uber.org/zap"
)

// HandleCheckHealth answers /ping, pinging the database when one is wired.
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			if err := store.HealthCheck(); err != nil {
				logger.L().Warn("health check failed", zap.Error(err))
				return response.ServiceUnavailable(c, "Database unavailable.")
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
