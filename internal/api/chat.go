package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cheffyhq/cheffy-server/internal/engine"
)

// chatRequest is the /api/chat request body.
type chatRequest struct {
	Message             string               `json:"message"`
	Personality         string               `json:"personality"`
	ConversationHistory []engine.ChatMessage `json:"conversationHistory"`
}

// Chat answers a cooking question in the requested assistant personality.
func (h *Handlers) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Message == "" || req.Personality == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Message and personality are required"})
	}

	personality, err := engine.ResolvePersonality(req.Personality)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid personality type"})
	}

	if engine.Cfg.LLMClient == nil {
		return c.Status(500).JSON(fiber.Map{"error": "Chat is not configured"})
	}

	response, err := engine.Chat(c.Context(), personality, req.ConversationHistory, req.Message)
	if err != nil {
		slog.Error("chat: LLM call failed", slog.String("personality", personality), slog.Any("err", err))
		status, msg := chatErrorStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg, "details": err.Error()})
	}

	return c.JSON(fiber.Map{
		"response":    response,
		"personality": personality,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// chatErrorStatus maps upstream LLM failures onto client-facing statuses.
func chatErrorStatus(err error) (int, string) {
	if errors.Is(err, engine.ErrUnknownPersonality) {
		return 400, "Invalid personality type"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return 429, "Rate limit exceeded. Please try again later."
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid api key"):
		return 401, "Invalid API key. Please check your configuration."
	default:
		return 502, "Assistant request failed"
	}
}
