package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisCache implements Redis-based caching
type redisCache struct {
	client *redis.Client
	config CacheConfig
}

// newRedisCache creates a new Redis cache client
func newRedisCache(config CacheConfig) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisCache{
		client: client,
		config: config,
	}, nil
}

// getListing retrieves a listing page from Redis
func (rc *redisCache) getListing(ctx context.Context, key string) (*CachedListing, error) {
	redisKey := fmt.Sprintf("adengine:%s", key)

	data, err := rc.client.Get(ctx, redisKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("Redis get error: %w", err)
	}

	var listing CachedListing
	if err := json.Unmarshal([]byte(data), &listing); err != nil {
		return nil, fmt.Errorf("JSON unmarshal error: %w", err)
	}

	return &listing, nil
}

// setListing stores a listing page in Redis
func (rc *redisCache) setListing(ctx context.Context, key string, listing *CachedListing, ttl time.Duration) error {
	redisKey := fmt.Sprintf("adengine:%s", key)

	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("JSON marshal error: %w", err)
	}

	if err := rc.client.Set(ctx, redisKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("Redis set error: %w", err)
	}

	return nil
}

// clear removes all adengine cache keys from Redis
func (rc *redisCache) clear(ctx context.Context) error {
	keys, err := rc.client.Keys(ctx, "adengine:*").Result()
	if err != nil {
		return fmt.Errorf("Redis keys error: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := rc.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("Redis delete error: %w", err)
	}

	return nil
}

// close closes the Redis connection
func (rc *redisCache) close() error {
	return rc.client.Close()
}

// healthCheck checks Redis connection health
func (rc *redisCache) healthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}
