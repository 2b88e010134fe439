package api

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cheffyhq/cheffy-server/internal/engine"
	"github.com/cheffyhq/cheffy-server/internal/pipeline"
	"github.com/cheffyhq/cheffy-server/internal/recipe"
)

// parseRequest is the /api/youtube-parse request body.
// Duration is the known video length in seconds, 0 = unknown.
type parseRequest struct {
	URL      string `json:"url"`
	Duration int    `json:"duration"`
}

// YouTubeParse extracts recipe steps from a YouTube video.
func (h *Handlers) YouTubeParse(c *fiber.Ctx) error {
	engine.IncrParseRequests()

	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.URL == "" {
		return c.Status(400).JSON(fiber.Map{"error": "YouTube URL is required"})
	}
	if req.Duration < 0 {
		req.Duration = 0
	}

	requestID := uuid.New().String()
	c.Set("X-Request-ID", requestID)
	log := slog.With(slog.String("request_id", requestID), slog.String("url", req.URL))

	cacheKey := engine.CacheKey("parse", req.URL, strconv.Itoa(req.Duration))
	if cached, ok := engine.CacheLoadJSON[recipe.Result](c.Context(), cacheKey); ok {
		log.Info("parse: cache hit")
		return c.JSON(cached)
	}

	result, err := h.orchestrator.Parse(c.Context(), pipeline.Request{
		URL:      req.URL,
		Duration: req.Duration,
	})
	if err != nil {
		log.Warn("parse: rejected", slog.Any("err", err))
		return c.Status(400).JSON(fiber.Map{"error": "Invalid YouTube URL"})
	}

	engine.CacheStoreJSON(c.Context(), cacheKey, result)
	return c.JSON(result)
}
