package handlers

import (
	"oruma/app"

	"github.com/gofiber/fiber/v2"
)

// Health reports liveness and whether the database can be opened
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := a.Database.DB(); err != nil {
			a.Logger.Error("health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unavailable",
				"database": a.Database.Name(),
			})
		}
		return success(c, fiber.Map{
			"status":   "ok",
			"database": a.Database.Name(),
		})
	}
}
