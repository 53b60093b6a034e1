package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sirupsen/logrus"
)

// Response represents a standardized API response
type Response struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// Page is the data payload of a list endpoint
type Page struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage returns a successful response with a message
func SuccessWithMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Paginated returns a list page
func Paginated(c *fiber.Ctx, items interface{}, pagination PaginationMeta) error {
	return Success(c, Page{Items: items, Pagination: pagination})
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
	})
}

// CalculatePagination calculates pagination metadata. pages is
// ceil(total/limit).
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	totalPages := int(total / int64(limit))
	if total%int64(limit) > 0 {
		totalPages++
	}

	return PaginationMeta{
		Current: page,
		Pages:   totalPages,
		Total:   total,
		Limit:   limit,
	}
}

// ErrorHandler translates errors returned by handlers into the response
// envelope. Internal errors are logged with the request context and reach
// the client only as a generic message.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.InternalError {
				logInternal(logger, c, appErr.Message, err)
			}
			return c.Status(appErr.Kind.Status()).JSON(Response{
				Success: false,
				Message: appErr.Message,
				Errors:  appErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code >= fiber.StatusInternalServerError {
				logInternal(logger, c, fiberErr.Message, err)
			}
			return Error(c, fiberErr.Code, fiberErr.Message)
		}

		logInternal(logger, c, "unhandled error", err)
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func logInternal(logger *logrus.Logger, c *fiber.Ctx, message string, err error) {
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"request_id": c.Locals("requestid"),
		"method":     c.Method(),
		"path":       c.Path(),
		"error":      err.Error(),
	}).Error(message)
}
