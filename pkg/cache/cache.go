// Package cache is the Redis-backed memoization layer: raw byte storage behind
// the Cache interface, JSON helpers on top, and the parsed-route cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// StaticTTL bounds how long cached reads of the airport table survive.
const StaticTTL = 5 * time.Minute

// clearBatch is the SCAN page size and DEL batch size used by Clear.
const clearBatch = 500

// Cache stores opaque values under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// RedisCache keeps every key under "<prefix>:" so Clear never touches data it
// does not own.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func redisErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("redis %s: %w", op, err)
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, redisErr("get", err)
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return redisErr("set", c.client.Set(ctx, c.key(key), value, ttl).Err())
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return redisErr("del", c.client.Del(ctx, c.key(key)).Err())
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	return n > 0, redisErr("exists", err)
}

// Clear deletes every key under the prefix, in batches.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.key("*"), clearBatch).Iterator()
	batch := make([]string, 0, clearBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := c.client.Del(ctx, batch...).Err()
		batch = batch[:0]
		return redisErr("clear", err)
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return redisErr("scan", err)
	}
	return flush()
}

// NoopCache stores nothing. It stands in for Redis when none is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, error)              { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, string) error                     { return nil }
func (NoopCache) Exists(context.Context, string) (bool, error)             { return false, nil }
func (NoopCache) Clear(context.Context) error                              { return nil }

// CacheManager adds JSON encoding on top of a Cache.
type CacheManager struct {
	Cache
}

func NewCacheManager(c Cache) *CacheManager {
	if c == nil {
		c = NoopCache{}
	}
	return &CacheManager{Cache: c}
}

// GetJSON decodes the value under key into dest. A value that no longer
// decodes is reported as a miss so callers rebuild it.
func (cm *CacheManager) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := cm.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: undecodable entry %s: %v", ErrCacheMiss, key, err)
	}
	return nil
}

func (cm *CacheManager) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return cm.Set(ctx, key, data, ttl)
}
