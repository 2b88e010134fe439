package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	FetchTimeout   time.Duration
	MaxPageBytes   int64   // watch-page body cap
	YouTubeRate    float64 // outbound YouTube requests per second
	MaxLangRetries int     // cap on mined-language transcript retries
	DetectorURL    string  // ingredient detection server, empty = mock only

	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = plain http.Client for page fetches
	LLMClient     *llm.Client    // nil = chat endpoint disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, api).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.MaxPageBytes <= 0 {
		c.MaxPageBytes = 6 * 1024 * 1024
	}
	if c.MaxLangRetries <= 0 {
		c.MaxLangRetries = 5
	}
	cfg = c
	Cfg = &cfg
	initYouTubeLimiter(c.YouTubeRate)
}
