package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// YouTube requests share one limiter so the strategy chain cannot burst
// past the configured rate even when several fallbacks fire in sequence.
var youtubeLimiter *rate.Limiter

func initYouTubeLimiter(rps float64) {
	if rps <= 0 {
		rps = 2
	}
	youtubeLimiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// WaitYouTube blocks until the YouTube rate limiter permits a request
// or ctx is done.
func WaitYouTube(ctx context.Context) error {
	if youtubeLimiter == nil {
		return nil
	}
	return youtubeLimiter.Wait(ctx)
}
