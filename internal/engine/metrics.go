package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks request counters for the /metrics endpoint.
// All fields are atomic for lock-free concurrent updates.
type Metrics struct {
	ParseRequests      atomic.Int64
	ChatRequests       atomic.Int64
	DetectRequests     atomic.Int64
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	PageFetches        atomic.Int64
	FetchErrors        atomic.Int64
	StartedAt          time.Time
}

var metrics = &Metrics{StartedAt: time.Now()}

func IncrParseRequests()      { metrics.ParseRequests.Add(1) }
func IncrChatRequests()       { metrics.ChatRequests.Add(1) }
func IncrDetectRequests()     { metrics.DetectRequests.Add(1) }
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
func IncrPageFetches()        { metrics.PageFetches.Add(1) }
func IncrFetchErrors()        { metrics.FetchErrors.Add(1) }

// FormatMetrics renders counters as a plain-text report.
func FormatMetrics() string {
	var b strings.Builder
	hits, misses := CacheStats()
	uptime := time.Since(metrics.StartedAt).Round(time.Second)

	fmt.Fprintf(&b, "uptime: %s\n", uptime)
	fmt.Fprintf(&b, "parse_requests: %d\n", metrics.ParseRequests.Load())
	fmt.Fprintf(&b, "chat_requests: %d\n", metrics.ChatRequests.Load())
	fmt.Fprintf(&b, "detect_requests: %d\n", metrics.DetectRequests.Load())
	fmt.Fprintf(&b, "transcript_requests: %d\n", metrics.TranscriptRequests.Load())
	fmt.Fprintf(&b, "transcript_errors: %d\n", metrics.TranscriptErrors.Load())
	fmt.Fprintf(&b, "page_fetches: %d\n", metrics.PageFetches.Load())
	fmt.Fprintf(&b, "fetch_errors: %d\n", metrics.FetchErrors.Load())
	fmt.Fprintf(&b, "cache_hits: %d\n", hits)
	fmt.Fprintf(&b, "cache_misses: %d\n", misses)
	return b.String()
}
