package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/logger"
)

// Cache is a thin JSON cache over Redis. A nil *Cache (or one built without
// a reachable Redis) degrades to a no-op so callers never have to branch.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis using the app config. Returns nil when no address
// is configured or the server is unreachable; callers treat nil as "no cache".
func New(cfg *config.Config) *Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
		return nil
	}

	logger.Info("Redis cache connected", "addr", cfg.Redis.Addr)
	return &Cache{rdb: rdb}
}

// Get unmarshals the cached value at key into dest. The bool reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores value as JSON at key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}
