//go:build redis_integration

package viz

import (
	"os"
	"testing"
	"time"

	"routeviz/internal/model"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping integration test")
	}
	c, err := NewRedisCache(url, time.Minute)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	if err := c.Ping(t.Context()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	key := CacheKey("it", "1")
	if err := c.Set(t.Context(), key, model.Figure{Vehicle: "1"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	fig, ok, err := c.Get(t.Context(), key)
	if err != nil || !ok || fig.Vehicle != "1" {
		t.Fatalf("Get: %+v %v %v", fig, ok, err)
	}
	if _, ok, err := c.Get(t.Context(), CacheKey("it", "missing")); ok || err != nil {
		t.Fatalf("missing key: %v %v", ok, err)
	}
}
