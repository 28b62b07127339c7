package service

import (
	"context"
	"fmt"

	"github.com/motorlane/adengine/internal/models"
)

// CompareService resolves two ads for side-by-side attribute comparison.
type CompareService interface {
	Compare(ctx context.Context, firstID, secondID string) (*models.Comparison, error)
}

// AdCompareService handles comparison requests
type AdCompareService struct {
	repository AdRepository
}

// NewCompareService creates a new compare service
func NewCompareService(repo AdRepository) *AdCompareService {
	return &AdCompareService{repository: repo}
}

// Compare loads both snapshots and resolves the pair. Eligibility is wider
// than the public listing: expired ads can still be compared. An ad that
// exists but is not eligible reads as absent to the caller, the same as an
// unknown id.
func (s *AdCompareService) Compare(ctx context.Context, firstID, secondID string) (*models.Comparison, error) {
	first, err := s.loadComparable(ctx, firstID)
	if err != nil {
		return nil, err
	}

	second, err := s.loadComparable(ctx, secondID)
	if err != nil {
		return nil, err
	}

	comparison := models.ResolvePair(first, second)
	return &comparison, nil
}

func (s *AdCompareService) loadComparable(ctx context.Context, id string) (*models.Ad, error) {
	ad, err := s.repository.FindAdByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ad.VisibleForCompare() {
		return nil, fmt.Errorf("%w: ad %s is not available for comparison", models.ErrNotFound, id)
	}
	return ad, nil
}
