package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

// mockRepository implements service.AdRepository in memory, for local
// development and tests that do not want a database.
type mockRepository struct {
	mu  sync.RWMutex
	ads map[string]*models.Ad
}

// NewMockRepository creates a new mock repository with sample data
func NewMockRepository() service.AdRepository {
	now := time.Now()
	price := func(v float64) *float64 { return &v }
	count := func(v int) *int { return &v }

	ads := []*models.Ad{
		{
			ID:           uuid.New().String(),
			Title:        "Toyota Aqua 2017",
			Description:  "Hybrid, first owner, full service history",
			Brand:        "Toyota",
			Model:        "Aqua",
			Year:         count(2017),
			Price:        price(7250000),
			Mileage:      count(68000),
			EngineCC:     count(1500),
			Location:     "Colombo",
			Phone:        "0771112223",
			ListingType:  models.ListingSell,
			Status:       models.StatusActive,
			Published:    true,
			CreatedBy:    "user-1",
			CreatorName:  "Nadia",
			CreatorEmail: "nadia@example.com",
			CreatedAt:    now.Add(-48 * time.Hour),
			UpdatedAt:    now.Add(-24 * time.Hour),
		},
		{
			ID:           uuid.New().String(),
			Title:        "Honda Vezel wanted",
			Description:  "Looking for a 2016 or newer Vezel",
			Brand:        "Honda",
			Model:        "Vezel",
			Location:     "Kandy",
			Phone:        "0774445556",
			ListingType:  models.ListingWant,
			Status:       models.StatusActive,
			Published:    true,
			CreatedBy:    "user-2",
			CreatorName:  "Ruwan",
			CreatorEmail: "ruwan@example.com",
			CreatedAt:    now.Add(-30 * time.Hour),
			UpdatedAt:    now.Add(-12 * time.Hour),
		},
		{
			ID:           uuid.New().String(),
			Title:        "Nissan Caravan for hire",
			Description:  "Driver included, long trips only",
			Brand:        "Nissan",
			Model:        "Caravan",
			Year:         count(2014),
			Location:     "Galle",
			Phone:        "0777778889",
			ListingType:  models.ListingHire,
			Status:       models.StatusPendingReview,
			Published:    true,
			CreatedBy:    "user-1",
			CreatorName:  "Nadia",
			CreatorEmail: "nadia@example.com",
			CreatedAt:    now.Add(-2 * time.Hour),
			UpdatedAt:    now.Add(-2 * time.Hour),
		},
	}

	store := make(map[string]*models.Ad, len(ads))
	for _, ad := range ads {
		store[ad.ID] = ad
	}

	return &mockRepository{ads: store}
}

// NewMockRepositoryWithAds creates a mock repository seeded with the given ads
func NewMockRepositoryWithAds(ads []*models.Ad) service.AdRepository {
	store := make(map[string]*models.Ad, len(ads))
	for _, ad := range ads {
		store[ad.ID] = ad
	}
	return &mockRepository{ads: store}
}

// FindAdByID returns a copy of the stored ad
func (r *mockRepository) FindAdByID(ctx context.Context, id string) (*models.Ad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ad, ok := r.ads[id]
	if !ok {
		return nil, fmt.Errorf("%w: ad %s", models.ErrNotFound, id)
	}

	copied := *ad
	return &copied, nil
}

// UpdateAdStatus applies a status write in one step
func (r *mockRepository) UpdateAdStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ad, ok := r.ads[id]
	if !ok {
		return nil, fmt.Errorf("%w: ad %s", models.ErrNotFound, id)
	}

	ad.Status = update.Status
	ad.Published = update.Published
	ad.IsDraft = update.IsDraft
	ad.RejectionDescription = update.RejectionDescription
	ad.UpdatedAt = time.Now()

	copied := *ad
	return &copied, nil
}

// UpdateAdPromotion applies a promotion write in one step
func (r *mockRepository) UpdateAdPromotion(ctx context.Context, id string, promotion models.PromotionState) (*models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ad, ok := r.ads[id]
	if !ok {
		return nil, fmt.Errorf("%w: ad %s", models.ErrNotFound, id)
	}

	ad.Boosted = promotion.Boosted
	ad.BoostExpiry = promotion.BoostExpiry
	ad.Featured = promotion.Featured
	ad.FeatureExpiry = promotion.FeatureExpiry
	ad.UpdatedAt = time.Now()

	copied := *ad
	return &copied, nil
}

// QueryAds applies the filter in memory with the same semantics the
// postgres repository expresses in SQL.
func (r *mockRepository) QueryAds(ctx context.Context, filter models.AdFilter, page, limit int) ([]models.Ad, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	var matched []models.Ad
	for _, ad := range r.ads {
		if filter.Matches(ad) {
			matched = append(matched, *ad)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if a.IsFeaturedAt(now) != b.IsFeaturedAt(now) {
			return a.IsFeaturedAt(now)
		}
		if a.IsBoostedAt(now) != b.IsBoostedAt(now) {
			return a.IsBoostedAt(now)
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})

	total := len(matched)
	start := (page - 1) * limit
	if start >= total {
		return []models.Ad{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}
