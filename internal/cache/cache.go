package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/motorlane/adengine/internal/models"
)

// CachedListing is one page of listing results as served to readers.
type CachedListing struct {
	Ads   []models.Ad `json:"ads"`
	Total int         `json:"total"`
}

// Cache defines the interface for listing-page caching
type Cache interface {
	GetListing(ctx context.Context, key string) (*CachedListing, error)
	SetListing(ctx context.Context, key string, listing *CachedListing, ttl time.Duration) error

	// Cache management
	InvalidateAll(ctx context.Context) error
	GetStats() CacheStats
}

// CacheStats holds cache performance statistics
type CacheStats struct {
	Hits        int64
	Misses      int64
	Errors      int64
	HitRatio    float64
	TotalOps    int64
	LastUpdated time.Time
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	DefaultTTL      time.Duration
	MemoryCacheSize int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	EnableMemory    bool
	EnableRedis     bool
}

// ListingKey derives a stable cache key from a filter and page window.
// Search text is lowercased so equivalent queries share an entry.
func ListingKey(filter models.AdFilter, page, limit int) string {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}
	return fmt.Sprintf("listing:%s:%s:%s:%s:%d:%d",
		filter.CreatedBy,
		strings.Join(statuses, ","),
		filter.ListingType,
		strings.ToLower(filter.SearchText),
		page, limit)
}

// HybridCache layers an in-memory cache over Redis. Memory answers the
// hot path; Redis shares entries between instances.
type HybridCache struct {
	memoryCache *memoryCache
	redisCache  *redisCache
	config      CacheConfig
	stats       CacheStats
	mu          sync.RWMutex
}

// NewHybridCache creates a new hybrid cache
func NewHybridCache(config CacheConfig) (*HybridCache, error) {
	hc := &HybridCache{
		config: config,
		stats: CacheStats{
			LastUpdated: time.Now(),
		},
	}

	if config.EnableMemory {
		hc.memoryCache = newMemoryCache(config.MemoryCacheSize)
	}

	if config.EnableRedis {
		var err error
		hc.redisCache, err = newRedisCache(config)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis cache: %w", err)
		}
	}

	return hc, nil
}

// GetListing retrieves a listing page (memory first, then Redis, then miss)
func (hc *HybridCache) GetListing(ctx context.Context, key string) (*CachedListing, error) {
	if hc.memoryCache != nil {
		if listing, found := hc.memoryCache.getListing(key); found {
			hc.recordHit()
			return listing, nil
		}
	}

	if hc.redisCache != nil {
		listing, err := hc.redisCache.getListing(ctx, key)
		if err == nil {
			hc.recordHit()
			// Warm memory cache
			if hc.memoryCache != nil {
				hc.memoryCache.setListing(key, listing, hc.config.DefaultTTL)
			}
			return listing, nil
		}
	}

	hc.recordMiss()
	return nil, ErrCacheMiss
}

// SetListing stores a listing page in both caches
func (hc *HybridCache) SetListing(ctx context.Context, key string, listing *CachedListing, ttl time.Duration) error {
	var errs []error

	if hc.memoryCache != nil {
		hc.memoryCache.setListing(key, listing, ttl)
	}

	if hc.redisCache != nil {
		if err := hc.redisCache.setListing(ctx, key, listing, ttl); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		hc.recordError()
		return fmt.Errorf("cache store errors: %v", errs)
	}

	return nil
}

// InvalidateAll clears all caches
func (hc *HybridCache) InvalidateAll(ctx context.Context) error {
	var errs []error

	if hc.memoryCache != nil {
		hc.memoryCache.clear()
	}

	if hc.redisCache != nil {
		if err := hc.redisCache.clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cache invalidation errors: %v", errs)
	}

	return nil
}

// GetStats returns cache statistics
func (hc *HybridCache) GetStats() CacheStats {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	stats := hc.stats
	if stats.TotalOps > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(stats.TotalOps)
	}
	return stats
}

func (hc *HybridCache) recordHit() {
	hc.mu.Lock()
	hc.stats.Hits++
	hc.stats.TotalOps++
	hc.mu.Unlock()
}

func (hc *HybridCache) recordMiss() {
	hc.mu.Lock()
	hc.stats.Misses++
	hc.stats.TotalOps++
	hc.mu.Unlock()
}

func (hc *HybridCache) recordError() {
	hc.mu.Lock()
	hc.stats.Errors++
	hc.mu.Unlock()
}

var (
	ErrCacheMiss = fmt.Errorf("cache miss")
)
