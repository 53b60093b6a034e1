package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/utils/response"
	"github.com/sirupsen/logrus"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *logrus.Logger
}

// NewApp builds the Fiber app with the envelope error handler
func NewApp(log *logrus.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "academic-portfolio-api",
		ErrorHandler: response.ErrorHandler(log),
		BodyLimit:    1 << 20,
		Immutable:    true,
	})
}

func NewAPIServer(listenAddress string, log *logrus.Logger) *APIServer {
	return &APIServer{
		app:           NewApp(log),
		listenAddress: listenAddress,
		log:           log,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.WithField("address", s.listenAddress).Info("starting API server")
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
