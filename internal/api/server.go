// Package api exposes the HTTP surface: recipe parsing, assistant chat,
// ingredient detection, health and metrics.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cheffyhq/cheffy-server/internal/engine"
	"github.com/cheffyhq/cheffy-server/internal/pipeline"
)

// Handlers carries per-route dependencies.
type Handlers struct {
	orchestrator *pipeline.Orchestrator
}

// NewServer builds the fiber app with all routes and middleware mounted.
func NewServer() *fiber.App {
	return newServerWith(&Handlers{orchestrator: pipeline.New()})
}

func newServerWith(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "cheffy-server",
		BodyLimit: 10 * 1024 * 1024, // ingredient photos
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Post("/api/youtube-parse", h.YouTubeParse)
	app.Post("/api/chat", h.Chat)
	app.Post("/api/detect-ingredients", h.DetectIngredients)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendString(engine.FormatMetrics())
	})

	return app
}
