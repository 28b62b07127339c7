package service

import (
	"context"

	"github.com/motorlane/adengine/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListingService answers listing queries consistent with the visibility
// rules for the requesting actor.
type ListingService interface {
	ListAds(ctx context.Context, actor models.Actor, params models.ListingParams) ([]models.Ad, int, error)
}

// AdListingService handles listing queries
type AdListingService struct {
	repository AdRepository
}

// NewListingService creates a new listing service
func NewListingService(repo AdRepository) *AdListingService {
	return &AdListingService{repository: repo}
}

// ListAds builds the visibility filter for the actor and runs the query.
// Visibility is a filter-time decision, never a stored field.
func (s *AdListingService) ListAds(ctx context.Context, actor models.Actor, params models.ListingParams) ([]models.Ad, int, error) {
	filter, err := models.BuildFilter(actor.Role, params.FilterByUser, actor.ID, params.SearchText, params.ListingType)
	if err != nil {
		return nil, 0, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	return s.repository.QueryAds(ctx, filter, page, limit)
}
