package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// FetchPage fetches a URL as raw HTML with browser-like headers. Prefers the
// Chrome-TLS BrowserClient when configured, falling back to the shared
// http.Client with exponential-backoff retries.
func FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	IncrPageFetches()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	if cfg.BrowserClient != nil {
		body, status, err := cfg.BrowserClient.Do(http.MethodGet, pageURL, ChromeHeaders(), nil)
		if err == nil && status == http.StatusOK {
			return body, nil
		}
		if err == nil {
			err = fmt.Errorf("status %d", status)
		}
		// TLS impersonation is best-effort, fall through to the plain client.
		slog.Debug("fetch: browser client failed", slog.String("url", pageURL), slog.Any("err", err))
	}

	resp, err := fetchWithBackoff(ctx, pageURL)
	if err != nil {
		IncrFetchErrors()
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp, cfg.MaxPageBytes)
	if err != nil {
		IncrFetchErrors()
		return nil, fmt.Errorf("read page body: %w", err)
	}
	return body, nil
}

// fetchWithBackoff performs an HTTP GET with exponential backoff retries.
func fetchWithBackoff(ctx context.Context, fetchURL string) (*http.Response, error) {
	operation := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		req.Header.Set("User-Agent", RandomUserAgent())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err := cfg.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}

		if isRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	return backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3), backoff.WithMaxElapsedTime(30*time.Second))
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data, nil
}
