// Package server exposes the SQL generation service over HTTP.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/jsonsql/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

type Server struct {
	app     *fiber.App
	service *service.Service
	port    int
	log     zerolog.Logger
}

func NewServer(svc *service.Service, port int, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "jsonsql",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		// Params and Query values end up as store keys and must outlive the request.
		Immutable: true,
	})

	server := &Server{
		app:     app,
		service: svc,
		port:    port,
		log:     log.With().Str("component", "server").Logger(),
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.app.Use(recover.New())
	s.app.Use(s.requestLogger)

	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api/v1")

	sql := api.Group("/sql")
	sql.Post("/generate", s.handleGenerate)
	sql.Post("/validate", s.handleValidate)
	sql.Get("/ddl/:name", s.handleDDL)

	tables := api.Group("/tables")
	tables.Get("/", s.handleListTables)
	tables.Get("/:name", s.handleGetTable)
	tables.Post("/", s.handleCreateTable)
	tables.Put("/:name", s.handleUpdateTable)
	tables.Delete("/:name", s.handleDeleteTable)
}

// App exposes the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Int("port", s.port).Msg("server listening")
		errCh <- s.app.Listen(fmt.Sprintf(":%d", s.port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down server")
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = errorStatus(err)
	}
	s.log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("request")
	return err
}
