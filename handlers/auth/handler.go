package auth

import (
	"github.com/sahilchouksey/academic-portfolio/services"
	"github.com/sahilchouksey/academic-portfolio/utils/middleware"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	credentials          *services.CredentialService
	validator            *validation.Validator
	bruteForceProtection *middleware.BruteForceProtection
	log                  *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(credentials *services.CredentialService, validator *validation.Validator, bruteForceProtection *middleware.BruteForceProtection, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		credentials:          credentials,
		validator:            validator,
		bruteForceProtection: bruteForceProtection,
		log:                  log,
	}
}
