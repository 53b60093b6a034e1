package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/middleware"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
)

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return apperror.New(apperror.MissingToken, "Authentication required")
	}

	return response.Success(c, fiber.Map{"admin": admin})
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return apperror.New(apperror.MissingToken, "Authentication required")
	}

	var req schema.ChangePasswordRequest
	if err := h.validator.Bind(c.Body(), &req); err != nil {
		return err
	}

	if err := h.credentials.ChangePassword(c.UserContext(), admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Password changed successfully", nil)
}
