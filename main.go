// cheffy-server — backend for the Cheffy cooking assistant.
//
// Exposes the recipe-step extraction pipeline (YouTube transcripts,
// descriptions and chapter markers), personality-driven cooking chat,
// and an ingredient-detection proxy over HTTP.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"

	"github.com/cheffyhq/cheffy-server/internal/api"
	"github.com/cheffyhq/cheffy-server/internal/engine"
)

var (
	version  = "dev"
	httpPort = env.Str("PORT", "8080")
)

func main() {
	initEngine()

	slog.Info("starting cheffy-server",
		slog.String("version", version),
		slog.String("port", httpPort),
	)

	app := api.NewServer()

	go func() {
		if err := app.Listen(":" + httpPort); err != nil {
			slog.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		MaxPageBytes:         int64(env.Int("MAX_PAGE_BYTES", 6*1024*1024)),
		YouTubeRate:          env.Float("YOUTUBE_RATE", 2),
		MaxLangRetries:       env.Int("MAX_LANG_RETRIES", 5),
		DetectorURL:          env.Str("DETECTOR_URL", ""),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://api.openai.com/v1"),
		LLMModel:             env.Str("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.8),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 1000),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	bc, err := engine.NewBrowserClient()
	if err != nil {
		slog.Warn("browser client init failed, using plain HTTP for page fetches", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("browser client initialized")
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
	} else {
		slog.Warn("LLM_API_KEY not set, chat endpoint disabled")
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
