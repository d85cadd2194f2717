package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/utils/response"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *zap.Logger
}

func NewAPIServer(listenAddress string, log *zap.Logger) *APIServer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &APIServer{listenAddress: listenAddress, log: log}
	s.app = fiber.New(fiber.Config{
		AppName:      "facet-departamentos",
		ErrorHandler: s.ErrorHandler,
		BodyLimit:    10 * 1024 * 1024, // resolucion adjuntos
	})
	return s
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// ErrorHandler renders errors that escaped a handler. Unmatched routes get
// the catch-all body, other fiber errors keep their status.
func (s *APIServer) ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return response.RouteNotFound(c)
		}
		return response.Error(c, fe.Code, fe.Message)
	}

	s.log.Error("unhandled error",
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
	)
	return response.InternalServerError(c, "")
}

func (s *APIServer) Run() error {
	s.log.Info("starting API server", zap.String("addr", s.listenAddress))
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *APIServer) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
