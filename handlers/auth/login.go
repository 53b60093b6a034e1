package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/middleware"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
)

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req schema.LoginRequest
	if err := h.validator.Bind(c.Body(), &req); err != nil {
		return err
	}

	ctx := c.UserContext()
	ip := c.IP()

	result, err := h.credentials.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch apperror.KindOf(err) {
		case apperror.InvalidCredentials:
			middleware.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			if h.bruteForceProtection != nil {
				h.bruteForceProtection.RecordFailedAttempt(ctx, ip)
			}
		case apperror.AccountLocked:
			middleware.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		}
		return err
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(ctx, ip)
	}

	return response.SuccessWithMessage(c, "Login successful", result)
}
