package content

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/services"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
)

// PersonalHandler serves the profile singleton
type PersonalHandler struct {
	service   *services.PersonalService
	validator *validation.Validator
}

// NewPersonalHandler creates a new personal handler
func NewPersonalHandler(service *services.PersonalService, validator *validation.Validator) *PersonalHandler {
	return &PersonalHandler{service: service, validator: validator}
}

// GetPersonal handles GET /content/personal
func (h *PersonalHandler) GetPersonal(c *fiber.Ctx) error {
	personal, err := h.service.GetOrCreate(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"personal": personal})
}

// UpdatePersonal handles PUT /content/personal
func (h *PersonalHandler) UpdatePersonal(c *fiber.Ctx) error {
	var req schema.PersonalRequest
	if err := h.validator.Bind(c.Body(), &req); err != nil {
		return err
	}

	personal, err := h.service.Upsert(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Personal information updated successfully", fiber.Map{"personal": personal})
}
