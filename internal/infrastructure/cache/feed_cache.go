package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "vibes:feed:"
	KeyGeneration = "vibes:feed:gen"
	DefaultTTL    = 60 * time.Second
)

// FeedCache stores ranked read results in Redis. Entries are namespaced by a
// generation counter; Invalidate bumps the counter so every older entry is
// unreachable from the next read on.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

func (c *FeedCache) generation(ctx context.Context) (string, error) {
	gen, err := c.client.Get(ctx, KeyGeneration).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return gen, nil
}

// Get loads the entry for key into dst. It returns false on a miss, along with the
// generation it looked in; pass that generation to Set when storing a result
// computed after the miss.
func (c *FeedCache) Get(ctx context.Context, key string, dst interface{}) (string, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return "", false, err
	}
	data, err := c.client.Get(ctx, keyPrefix+gen+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return gen, false, err
	}
	return gen, true, nil
}

// Set stores v under gen. A write racing an Invalidate lands in the old
// generation and is never read, so a result loaded before a write cannot
// outlive it.
func (c *FeedCache) Set(ctx context.Context, gen, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+gen+":"+key, data, c.ttl).Err()
}

// Invalidate drops every cached entry by moving to a new generation.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, KeyGeneration).Err()
}

// Generation returns the current generation number (0 when never invalidated).
func (c *FeedCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(gen, 10, 64)
}
