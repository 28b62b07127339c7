package service

import (
	"context"
	"testing"

	"github.com/motorlane/adengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func comparableAd(id string, status models.AdStatus) *models.Ad {
	price := 1000000.0
	ad := &models.Ad{
		ID:          id,
		Title:       "Mazda Demio " + id,
		ListingType: models.ListingSell,
		Status:      status,
		Price:       &price,
	}
	if status == models.StatusActive {
		ad.Published = true
	}
	return ad
}

func TestCompareService_ActivePair(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewCompareService(mockRepo)

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(comparableAd("ad-1", models.StatusActive), nil)
	mockRepo.On("FindAdByID", mock.Anything, "ad-2").Return(comparableAd("ad-2", models.StatusActive), nil)

	comparison, err := svc.Compare(context.Background(), "ad-1", "ad-2")
	assert.NoError(t, err)
	assert.NotNil(t, comparison.Second)
	assert.False(t, comparison.SecondCleared)

	mockRepo.AssertExpectations(t)
}

func TestCompareService_ExpiredAdIsEligible(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewCompareService(mockRepo)

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(comparableAd("ad-1", models.StatusActive), nil)
	mockRepo.On("FindAdByID", mock.Anything, "ad-2").Return(comparableAd("ad-2", models.StatusExpired), nil)

	comparison, err := svc.Compare(context.Background(), "ad-1", "ad-2")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusExpired, comparison.Second.Status)
}

func TestCompareService_PendingAdIsNotEligible(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewCompareService(mockRepo)

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(comparableAd("ad-1", models.StatusPendingReview), nil)

	_, err := svc.Compare(context.Background(), "ad-1", "ad-2")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCompareService_UnknownAd(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewCompareService(mockRepo)

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(comparableAd("ad-1", models.StatusActive), nil)
	mockRepo.On("FindAdByID", mock.Anything, "ghost").Return(nil, models.ErrNotFound)

	_, err := svc.Compare(context.Background(), "ad-1", "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCompareService_TypeMismatchClearsSecond(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewCompareService(mockRepo)

	first := comparableAd("ad-1", models.StatusActive)
	second := comparableAd("ad-2", models.StatusActive)
	second.ListingType = models.ListingRent

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(first, nil)
	mockRepo.On("FindAdByID", mock.Anything, "ad-2").Return(second, nil)

	comparison, err := svc.Compare(context.Background(), "ad-1", "ad-2")
	assert.NoError(t, err)
	assert.Nil(t, comparison.Second)
	assert.True(t, comparison.SecondCleared)
}
