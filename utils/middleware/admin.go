package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AdminAuditLog writes an audit line for every write performed by an
// authenticated administrator. It must run after Required.
func AdminAuditLog(logger *logrus.Logger, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			return c.Next()
		}

		err := c.Next()

		admin, ok := GetAdmin(c)
		if !ok {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		logger.WithFields(logrus.Fields{
			"admin_id":    admin.ID,
			"admin_email": admin.Email,
			"method":      c.Method(),
			"resource":    resource,
			"resource_id": c.Params("id"),
			"status":      status,
			"ip":          c.IP(),
		}).Info("admin action")

		return err
	}
}
