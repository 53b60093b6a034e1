package setup

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/database"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
	"gorm.io/gorm"
)

// SetupHandler creates the default records of a fresh installation
type SetupHandler struct {
	db            *gorm.DB
	seeder        *database.Seeder
	adminEmail    string
	adminPassword string
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(db *gorm.DB, seeder *database.Seeder, adminEmail, adminPassword string) *SetupHandler {
	return &SetupHandler{
		db:            db,
		seeder:        seeder,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Status reports whether the defaults exist
type Status struct {
	Initialized   bool  `json:"initialized"`
	AdminCount    int64 `json:"adminCount"`
	PersonalCount int64 `json:"personalCount"`
}

// Init handles POST /init. It is idempotent.
func (h *SetupHandler) Init(c *fiber.Ctx) error {
	result, err := h.seeder.SeedAll(c.UserContext(), h.adminEmail, h.adminPassword)
	if err != nil {
		return apperror.Internal("Failed to initialize database", err)
	}

	if !result.Admin && !result.Personal {
		return response.SuccessWithMessage(c, "Database already initialized", result)
	}
	return response.SuccessWithMessage(c, "Database initialized successfully", result)
}

// GetStatus handles GET /status
func (h *SetupHandler) GetStatus(c *fiber.Ctx) error {
	db := h.db.WithContext(c.UserContext())

	var status Status
	if err := db.Model(&model.Admin{}).Count(&status.AdminCount).Error; err != nil {
		return apperror.Internal("Failed to check initialization status", err)
	}
	if err := db.Model(&model.Personal{}).Count(&status.PersonalCount).Error; err != nil {
		return apperror.Internal("Failed to check initialization status", err)
	}
	status.Initialized = status.AdminCount > 0 && status.PersonalCount > 0

	return response.Success(c, status)
}
