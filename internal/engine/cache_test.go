package engine

import (
	"context"
	"testing"
	"time"
)

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("parse", "https://youtu.be/abc", "300")
	b := CacheKey("parse", "https://youtu.be/abc", "300")
	c := CacheKey("parse", "https://youtu.be/abc", "600")
	if a != b {
		t.Errorf("same parts gave different keys: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different durations gave the same key")
	}
}

func TestCacheSetGet(t *testing.T) {
	parseCache = &tieredCache{ttl: time.Minute, maxEntries: 10}
	defer func() { parseCache = nil }()

	ctx := context.Background()
	key := CacheKey("parse", "video1")

	if _, ok := CacheGet(ctx, key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	CacheSet(ctx, key, []byte(`{"videoId":"video1"}`))
	data, ok := CacheGet(ctx, key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(data) != `{"videoId":"video1"}` {
		t.Errorf("data = %q", data)
	}
}

func TestCacheExpiry(t *testing.T) {
	parseCache = &tieredCache{ttl: 10 * time.Millisecond, maxEntries: 10}
	defer func() { parseCache = nil }()

	ctx := context.Background()
	key := CacheKey("parse", "video2")
	CacheSet(ctx, key, []byte("steps"))

	time.Sleep(25 * time.Millisecond)
	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestCacheJSONRoundTrip(t *testing.T) {
	parseCache = &tieredCache{ttl: time.Minute, maxEntries: 10}
	defer func() { parseCache = nil }()

	type payload struct {
		VideoID string `json:"videoId"`
		Count   int    `json:"count"`
	}

	ctx := context.Background()
	key := CacheKey("parse", "video3")

	CacheStoreJSON(ctx, key, payload{VideoID: "video3", Count: 7})
	got, ok := CacheLoadJSON[payload](ctx, key)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.VideoID != "video3" || got.Count != 7 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheEviction(t *testing.T) {
	parseCache = &tieredCache{ttl: time.Minute, maxEntries: 3}
	defer func() { parseCache = nil }()

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		CacheSet(ctx, CacheKey("parse", id), []byte(id))
	}

	count := 0
	parseCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("L1 holds %d entries, want at most %d", count, 3)
	}
}
