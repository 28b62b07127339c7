package config

import (
	"os"
	"time"

	"github.com/motorlane/adengine/internal/cache"
)

// GetCacheConfig creates cache configuration from environment variables
func GetCacheConfig() cache.CacheConfig {
	return cache.CacheConfig{
		DefaultTTL:      getDurationEnv("CACHE_DEFAULT_TTL", 2*time.Minute),
		MemoryCacheSize: getEnvInt("CACHE_MEMORY_SIZE", 1000),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		EnableMemory:    getEnvBool("CACHE_ENABLE_MEMORY", true),
		EnableRedis:     getEnvBool("CACHE_ENABLE_REDIS", false),
	}
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
