// Package cache keeps extraction results in Redis so repeated uploads of the
// same document skip parsing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/service"
)

// RedisResultCache implements service.ResultCache on Redis string keys.
type RedisResultCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisResultCache creates a cache whose entries expire after ttl.
// A zero ttl keeps entries until evicted.
func NewRedisResultCache(rdb redis.Cmdable, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached result for digest. ok is false on a miss.
func (c *RedisResultCache) Get(ctx context.Context, digest string) (*service.ExtractResult, bool, error) {
	data, err := c.rdb.Get(ctx, config.CacheKey.ExtractResultKey(digest)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get result: %w", err)
	}

	var res service.ExtractResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("unmarshal result: %w", err)
	}
	return &res, true, nil
}

// Set stores res under digest.
func (c *RedisResultCache) Set(ctx context.Context, digest string, res *service.ExtractResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.rdb.Set(ctx, config.CacheKey.ExtractResultKey(digest), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}
	return nil
}
