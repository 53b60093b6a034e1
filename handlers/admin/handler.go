package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/handlers/content"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/services"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/middleware"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
)

// AdminHandler handles administrator management and the dashboard
type AdminHandler struct {
	service   *services.AdminService
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *services.AdminService, validator *validation.Validator) *AdminHandler {
	return &AdminHandler{service: service, validator: validator}
}

// ListAdmins handles GET /admin/admins
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"admins": admins, "total": len(admins)})
}

// CreateAdmin handles POST /admin/admins
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req schema.CreateAdminRequest
	if err := h.validator.Bind(c.Body(), &req); err != nil {
		return err
	}

	admin, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return response.Created(c, "Admin created successfully", fiber.Map{"admin": admin.Summary()})
}

// UpdateAdmin handles PUT /admin/admins/:id
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	id, err := adminID(c)
	if err != nil {
		return err
	}

	var req schema.UpdateAdminRequest
	if err := h.validator.Bind(c.Body(), &req); err != nil {
		return err
	}

	actor, _ := middleware.GetAdmin(c)
	admin, err := h.service.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Admin updated successfully", fiber.Map{"admin": admin})
}

// DeleteAdmin handles DELETE /admin/admins/:id
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := adminID(c)
	if err != nil {
		return err
	}

	actor, _ := middleware.GetAdmin(c)
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Admin deleted successfully", nil)
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"stats": stats})
}

func adminID(c *fiber.Ctx) (string, error) {
	id, err := content.ParseID(c)
	if err != nil {
		return "", apperror.New(apperror.InvalidIDFormat, "Invalid admin ID format")
	}
	return id, nil
}
