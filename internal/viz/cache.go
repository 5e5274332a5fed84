package viz

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	redis "github.com/redis/go-redis/v9"

	"routeviz/internal/model"
)

// FigureCache stores rendered figures by key.
type FigureCache interface {
	Get(ctx context.Context, key string) (model.Figure, bool, error)
	Set(ctx context.Context, key string, fig model.Figure) error
}

// CacheKey scopes a vehicle's figure to one dataset load.
func CacheKey(version, vehicle string) string { return "figure:" + version + ":" + vehicle }

// MemoryCache is an in-process FigureCache.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]model.Figure
}

func NewMemoryCache() *MemoryCache { return &MemoryCache{m: map[string]model.Figure{}} }

func (c *MemoryCache) Get(ctx context.Context, key string) (model.Figure, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.m[key]
	return f, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, fig model.Figure) error {
	c.mu.Lock()
	c.m[key] = fig
	c.mu.Unlock()
	return nil
}

// RedisCache implements FigureCache over Redis with JSON values.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	return &RedisCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

// NewRedisCacheClient wraps an existing client.
func NewRedisCacheClient(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (model.Figure, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Figure{}, false, nil
	}
	if err != nil {
		return model.Figure{}, false, err
	}
	var fig model.Figure
	if err := json.Unmarshal(b, &fig); err != nil {
		return model.Figure{}, false, errors.Wrapf(err, "decode cached %s", key)
	}
	return fig, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, fig model.Figure) error {
	b, err := json.Marshal(fig)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *RedisCache) Close() error { return c.rdb.Close() }
