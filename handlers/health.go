package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/database"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
)

// HandleCheckHealth reports whether the database answers
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}
