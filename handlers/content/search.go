package content

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/services"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
)

// SearchHandler serves content search
type SearchHandler struct {
	service *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /content/search?q=&type=
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	results, err := h.service.Search(c.UserContext(), c.Query("q"), c.Query("type"))
	if err != nil {
		return err
	}
	return response.Success(c, results)
}
