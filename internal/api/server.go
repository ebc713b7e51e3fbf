// Package api exposes the statement analyzer over HTTP.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/config"
	"github.com/insightdelivered/statement-analyzer/internal/layout"
)

// NewServer builds the fiber application with all middleware and routes
// wired up. The body limit rejects oversized uploads before any parsing.
func NewServer(cfg *config.Config, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "statement-analyzer",
		BodyLimit:             cfg.MaxUploadBytes,
		ReadTimeout:           cfg.HTTPReadTimeout,
		WriteTimeout:          cfg.HTTPWriteTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(log))
	app.Use(httpMetrics())

	handler := NewHandler(log, layout.HDFCTemplate())
	handler.Register(app)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

// requestLogger logs every request with method, path, status and duration.
func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.IP()).
			Msg("request completed")

		return err
	}
}
