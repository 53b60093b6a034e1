package content

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	queryHelper "github.com/sahilchouksey/academic-portfolio/utils/query"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
	"gorm.io/gorm"
)

// Expander replaces stored references in items with their expanded form.
// It returns one value per item, in order.
type Expander[T any] func(ctx context.Context, db *gorm.DB, items []T) ([]interface{}, error)

// Resource serves the five CRUD handlers of one content type. T is the
// stored model and P the request payload that is validated and applied onto
// it.
type Resource[T any, P any, PT interface {
	*P
	Apply(*T)
}] struct {
	// Path is the route segment, e.g. "scholarships-awards"
	Path string
	// Label names one item in messages, e.g. "Publication"
	Label string
	// Expand is optional and runs on list and get responses
	Expand Expander[T]

	db        *gorm.DB
	validator *validation.Validator
	maxLimit  int
}

// NewResource creates the handlers for one content type
func NewResource[T any, P any, PT interface {
	*P
	Apply(*T)
}](path, label string, db *gorm.DB, validator *validation.Validator, maxLimit int) *Resource[T, P, PT] {
	return &Resource[T, P, PT]{
		Path:      path,
		Label:     label,
		db:        db,
		validator: validator,
		maxLimit:  maxLimit,
	}
}

// List handles GET /content/{path}
func (r *Resource[T, P, PT]) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	params := queryHelper.ParsePagination(c, r.maxLimit)

	query := r.db.WithContext(ctx).Model(new(T))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return apperror.Internal("Failed to fetch "+r.Path, err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)
	if params.Page > pagination.Pages {
		return response.Paginated(c, make([]T, 0), pagination)
	}

	order := queryHelper.OrderClause(r.db, new(T), params.Sort)
	if order == "" {
		order = queryHelper.OrderClause(r.db, new(T), queryHelper.DefaultSort)
	}

	items := make([]T, 0)
	if err := r.db.WithContext(ctx).
		Order(order).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&items).Error; err != nil {
		return apperror.Internal("Failed to fetch "+r.Path, err)
	}

	if r.Expand == nil {
		return response.Paginated(c, items, pagination)
	}

	expanded, err := r.Expand(ctx, r.db, items)
	if err != nil {
		return apperror.Internal("Failed to fetch "+r.Path, err)
	}
	return response.Paginated(c, expanded, pagination)
}

// Get handles GET /content/{path}/:id
func (r *Resource[T, P, PT]) Get(c *fiber.Ctx) error {
	item, err := r.find(c)
	if err != nil {
		return err
	}

	if r.Expand == nil {
		return response.Success(c, fiber.Map{"item": item})
	}

	expanded, err := r.Expand(c.UserContext(), r.db, []T{*item})
	if err != nil {
		return apperror.Internal("Failed to fetch "+r.Label, err)
	}
	return response.Success(c, fiber.Map{"item": expanded[0]})
}

// Create handles POST /content/{path}
func (r *Resource[T, P, PT]) Create(c *fiber.Ctx) error {
	req := PT(new(P))
	if err := r.validator.Bind(c.Body(), req); err != nil {
		return err
	}

	item := new(T)
	req.Apply(item)

	if err := r.db.WithContext(c.UserContext()).Create(item).Error; err != nil {
		return apperror.Internal("Failed to create "+r.Label, err)
	}

	return response.Created(c, r.Label+" created successfully", fiber.Map{"item": item})
}

// Update handles PUT /content/{path}/:id
func (r *Resource[T, P, PT]) Update(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	req := PT(new(P))
	if err := r.validator.Bind(c.Body(), req); err != nil {
		return err
	}

	item, err := r.load(c.UserContext(), id)
	if err != nil {
		return err
	}

	req.Apply(item)
	if err := r.db.WithContext(c.UserContext()).Save(item).Error; err != nil {
		return apperror.Internal("Failed to update "+r.Label, err)
	}

	return response.SuccessWithMessage(c, r.Label+" updated successfully", fiber.Map{"item": item})
}

// Delete handles DELETE /content/{path}/:id
func (r *Resource[T, P, PT]) Delete(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	result := r.db.WithContext(c.UserContext()).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return apperror.Internal("Failed to delete "+r.Label, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.NotFound, r.Label+" not found")
	}

	return response.SuccessWithMessage(c, r.Label+" deleted successfully", nil)
}

// Register mounts the read routes publicly and the write routes behind
// protect
func (r *Resource[T, P, PT]) Register(router fiber.Router, protect ...fiber.Handler) {
	group := router.Group("/" + r.Path)

	group.Get("/", r.List)
	group.Get("/:id", r.Get)

	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protect...), h)
	}
	group.Post("/", write(r.Create)...)
	group.Put("/:id", write(r.Update)...)
	group.Delete("/:id", write(r.Delete)...)
}

func (r *Resource[T, P, PT]) find(c *fiber.Ctx) (*T, error) {
	id, err := ParseID(c)
	if err != nil {
		return nil, err
	}
	return r.load(c.UserContext(), id)
}

func (r *Resource[T, P, PT]) load(ctx context.Context, id string) (*T, error) {
	item := new(T)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.NotFound, r.Label+" not found")
		}
		return nil, apperror.Internal("Failed to fetch "+r.Label, err)
	}
	return item, nil
}

// ParseID returns the :id path parameter after checking its shape
func ParseID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !model.IsValidID(id) {
		return "", apperror.New(apperror.InvalidIDFormat, "Invalid ID format")
	}
	return id, nil
}
