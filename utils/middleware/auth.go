package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"gorm.io/gorm"
)

const adminLocalsKey = "admin"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		db:         db,
	}
}

// Required is middleware that requires a valid bearer token belonging to an
// active administrator. The administrator is stored in the request locals.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		adminID, err := m.jwtManager.Decode(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return apperror.Wrap(apperror.TokenExpired, "Token expired", err)
			}
			return apperror.Wrap(apperror.InvalidToken, "Invalid token", err)
		}

		var admin model.Admin
		if err := m.db.WithContext(c.UserContext()).Where("id = ?", adminID).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.PrincipalNotFound, "Admin not found")
			}
			return apperror.Internal("Authentication failed", err)
		}

		if !admin.IsActive {
			return apperror.New(apperror.PrincipalDisabled, "Admin account is disabled")
		}

		c.Locals(adminLocalsKey, &admin)
		return c.Next()
	}
}

// RequireRole is middleware that requires the authenticated administrator to
// hold at least the given role. It must run after Required.
func (m *AuthMiddleware) RequireRole(minRole auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := GetAdmin(c)
		if !ok {
			return apperror.New(apperror.MissingToken, "Authentication required")
		}

		if !auth.Role(admin.Role).Satisfies(minRole) {
			return apperror.New(apperror.InsufficientRole, "Insufficient permissions")
		}

		return c.Next()
	}
}

// RequireSuperAdmin is RequireRole(auth.RoleSuperAdmin)
func (m *AuthMiddleware) RequireSuperAdmin() fiber.Handler {
	return m.RequireRole(auth.RoleSuperAdmin)
}

func bearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	switch {
	case len(parts) == 0:
		return "", apperror.New(apperror.MissingToken, "Access token required")
	case len(parts) == 1 && strings.EqualFold(parts[0], "Bearer"):
		return "", apperror.New(apperror.MissingToken, "Access token required")
	case len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer"):
		return "", apperror.New(apperror.InvalidToken, "Invalid token")
	}
	return parts[1], nil
}

// GetAdmin extracts the authenticated administrator from context
func GetAdmin(c *fiber.Ctx) (*model.Admin, bool) {
	admin := c.Locals(adminLocalsKey)
	if admin == nil {
		return nil, false
	}
	a, ok := admin.(*model.Admin)
	return a, ok
}
