package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/cheffyhq/cheffy-server/internal/pipeline"
	"github.com/cheffyhq/cheffy-server/internal/recipe"
)

func testApp() *fiber.App {
	return newServerWith(&Handlers{orchestrator: &pipeline.Orchestrator{
		Transcript:  func(context.Context, string) []recipe.Segment { return nil },
		Description: func(context.Context, string) string { return "0:30 Chop the vegetables\n2:00 Cook everything\n" },
	}})
}

func TestHealthz(t *testing.T) {
	app := testApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := testApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "parse_requests:") {
		t.Errorf("metrics body missing counters: %q", body)
	}
}

func TestYouTubeParseValidation(t *testing.T) {
	app := testApp()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing url", `{}`, 400},
		{"malformed body", `{not json`, 400},
		{"bad url", `{"url":"https://example.com/x"}`, 400},
		{"valid", `{"url":"https://youtu.be/dQw4w9WgXcQ","duration":300}`, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/youtube-parse", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestYouTubeParseResponse(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/youtube-parse",
		strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ","duration":300}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result recipe.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("videoId = %q, want dQw4w9WgXcQ", result.VideoID)
	}
	if len(result.Steps) != 2 {
		t.Fatalf("got %d steps, want 2 from chapters", len(result.Steps))
	}
	if result.Steps[0].Timestamp != 30 || result.Steps[0].Time != "0:30" {
		t.Errorf("step 0 = %+v, want timestamp 30 at 0:30", result.Steps[0])
	}
	if result.Duration != 300 {
		t.Errorf("duration = %d, want 300", result.Duration)
	}
}

func TestChatValidation(t *testing.T) {
	app := testApp()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing message", `{"personality":"friendly"}`, 400},
		{"missing personality", `{"message":"how do I sear a steak?"}`, 400},
		{"unknown personality", `{"message":"hi","personality":"pirate"}`, 400},
		// No LLM client configured in tests.
		{"unconfigured", `{"message":"hi","personality":"gordon"}`, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestDetectIngredientsNoImage(t *testing.T) {
	app := testApp()
	req := httptest.NewRequest("POST", "/api/detect-ingredients", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDetectIngredientsMockFallback(t *testing.T) {
	app := testApp()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "fridge.jpg")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("not really a jpeg"))
	writer.Close()

	req := httptest.NewRequest("POST", "/api/detect-ingredients", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Ingredients []detectedIngredient `json:"ingredients"`
		Count       int                  `json:"count"`
		Fallback    bool                 `json:"fallback"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Fallback {
		t.Error("expected fallback response without a configured detector")
	}
	if body.Count != 4 || len(body.Ingredients) != 4 {
		t.Errorf("count = %d with %d ingredients, want 4", body.Count, len(body.Ingredients))
	}
	if body.Ingredients[0].Name != "tomato" {
		t.Errorf("first ingredient = %q, want tomato", body.Ingredients[0].Name)
	}
}
