package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/middleware"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
	"github.com/sirupsen/logrus"
)

// Verify handles GET /auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return apperror.New(apperror.MissingToken, "Authentication required")
	}

	return response.Success(c, fiber.Map{"admin": admin.Summary()})
}

// Logout handles POST /auth/logout. Tokens are stateless, so the client
// discards its token and the server only records the event.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return apperror.New(apperror.MissingToken, "Authentication required")
	}

	h.log.WithFields(logrus.Fields{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"at":       time.Now().UTC().Format(time.RFC3339),
	}).Info("admin logged out")

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
