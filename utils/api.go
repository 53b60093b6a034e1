package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/database"
)

// MakeHTTPHandleFunc binds a store to a handler. Errors go to the app's
// error handler.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		return handler(c, store)
	}
}
