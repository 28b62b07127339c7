package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

// CachedRepository wraps a repository with listing-page caching.
// Only the public ACTIVE-only view is cached: self-filtered and admin
// queries must always reflect the latest writes, and they are a tiny
// fraction of traffic anyway.
type CachedRepository struct {
	repo  service.AdRepository
	cache Cache
	ttl   time.Duration
}

// NewCachedRepository creates a new cached repository
func NewCachedRepository(repo service.AdRepository, cache Cache, ttl time.Duration) service.AdRepository {
	return &CachedRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// cacheable reports whether a filter describes the shared public view
func cacheable(filter models.AdFilter) bool {
	return filter.CreatedBy == "" &&
		len(filter.Statuses) == 1 &&
		filter.Statuses[0] == models.StatusActive
}

// QueryAds serves public listing pages from cache when possible
func (cr *CachedRepository) QueryAds(ctx context.Context, filter models.AdFilter, page, limit int) ([]models.Ad, int, error) {
	if !cacheable(filter) {
		return cr.repo.QueryAds(ctx, filter, page, limit)
	}

	key := ListingKey(filter, page, limit)
	if listing, err := cr.cache.GetListing(ctx, key); err == nil {
		return listing.Ads, listing.Total, nil
	}

	ads, total, err := cr.repo.QueryAds(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	// Store asynchronously so a slow cache never blocks the response.
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		listing := &CachedListing{Ads: ads, Total: total}
		if err := cr.cache.SetListing(cacheCtx, key, listing, cr.ttl); err != nil {
			fmt.Printf("Failed to cache listing page: %v\n", err)
		}
	}()

	return ads, total, nil
}

// FindAdByID always hits the repository; single-ad reads back moderation
// decisions and must be fresh.
func (cr *CachedRepository) FindAdByID(ctx context.Context, id string) (*models.Ad, error) {
	return cr.repo.FindAdByID(ctx, id)
}

// UpdateAdStatus writes through and invalidates cached listing pages
func (cr *CachedRepository) UpdateAdStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Ad, error) {
	ad, err := cr.repo.UpdateAdStatus(ctx, id, update)
	if err != nil {
		return nil, err
	}

	cr.invalidate(ctx)
	return ad, nil
}

// UpdateAdPromotion writes through and invalidates cached listing pages
func (cr *CachedRepository) UpdateAdPromotion(ctx context.Context, id string, promotion models.PromotionState) (*models.Ad, error) {
	ad, err := cr.repo.UpdateAdPromotion(ctx, id, promotion)
	if err != nil {
		return nil, err
	}

	cr.invalidate(ctx)
	return ad, nil
}

// invalidate drops all cached pages. Promotion and status changes reorder
// listings, so per-key invalidation buys nothing.
func (cr *CachedRepository) invalidate(ctx context.Context) {
	if err := cr.cache.InvalidateAll(ctx); err != nil {
		fmt.Printf("Failed to invalidate listing cache: %v\n", err)
	}
}

// GetCacheStats returns cache performance statistics
func (cr *CachedRepository) GetCacheStats() CacheStats {
	return cr.cache.GetStats()
}
