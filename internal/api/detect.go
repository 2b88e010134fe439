package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cheffyhq/cheffy-server/internal/engine"
)

// detectedIngredient mirrors the detection server's output items.
type detectedIngredient struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
	Emoji      string  `json:"emoji"`
}

// mockIngredients is served when the detection server is down or absent,
// so the frontend flow stays demonstrable.
var mockIngredients = []detectedIngredient{
	{Name: "tomato", Confidence: 0.95, Category: "Vegetables", Emoji: "🍅"},
	{Name: "onion", Confidence: 0.87, Category: "Vegetables", Emoji: "🧅"},
	{Name: "garlic", Confidence: 0.82, Category: "Vegetables", Emoji: "🧄"},
	{Name: "chicken", Confidence: 0.91, Category: "Meat", Emoji: "🍗"},
}

func mockDetectionResponse(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ingredients": mockIngredients,
		"count":       len(mockIngredients),
		"fallback":    true,
	})
}

// DetectIngredients forwards an uploaded photo to the detection server.
// Server errors and an unconfigured detector degrade to mock results.
func (h *Handlers) DetectIngredients(c *fiber.Ctx) error {
	engine.IncrDetectRequests()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No image file provided"})
	}

	if engine.Cfg.DetectorURL == "" {
		slog.Warn("detect: no detector configured, serving mock")
		return mockDetectionResponse(c)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read image file"})
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build upstream request"})
	}
	if _, err := io.Copy(part, file); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build upstream request"})
	}
	writer.Close()

	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost,
		engine.Cfg.DetectorURL+"/detect", &buf)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build upstream request"})
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		slog.Warn("detect: detection server unreachable, serving mock", slog.Any("err", err))
		return mockDetectionResponse(c)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		slog.Warn("detect: reading detection response failed, serving mock", slog.Any("err", err))
		return mockDetectionResponse(c)
	}

	if resp.StatusCode >= 500 {
		slog.Warn("detect: detection server error, serving mock",
			slog.Int("status", resp.StatusCode))
		return mockDetectionResponse(c)
	}
	if resp.StatusCode != http.StatusOK {
		return c.Status(resp.StatusCode).JSON(fiber.Map{
			"error":   "Failed to detect ingredients",
			"details": fmt.Sprintf("detection server returned %d", resp.StatusCode),
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(body)
}
