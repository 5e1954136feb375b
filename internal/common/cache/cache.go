package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"universal-shop-backend/internal/platform/redis"
)

const (
	KeyActiveGames    = "catalog:games"
	KeyActiveApps     = "catalog:apps"
	KeyActiveProducts = "catalog:products"
)

type CacheService struct {
	redisClient *redis.Client
}

func NewCacheService(redisClient *redis.Client) *CacheService {
	return &CacheService{
		redisClient: redisClient,
	}
}

// Get reads a cached value into dest.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in the cache.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

// Delete removes a key from the cache.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

// DeletePattern removes all keys matching a pattern.
func (c *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := c.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.redisClient.Del(ctx, keys...).Err()
	}

	return nil
}

// InvalidateCatalogCache drops the cached catalog listings after an admin
// creates a game, app or product.
func (c *CacheService) InvalidateCatalogCache(ctx context.Context) error {
	patterns := []string{
		KeyActiveGames,
		KeyActiveApps,
		KeyActiveProducts,
		"catalog:games:*",
		"catalog:apps:*",
	}

	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}

	return nil
}
