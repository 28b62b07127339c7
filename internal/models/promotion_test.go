package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputePromotion_Durations(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		duration PromotionDuration
		wantDays int
	}{
		{DurationOneWeek, 7},
		{DurationTwoWeeks, 14},
		{DurationOneMonth, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.duration), func(t *testing.T) {
			state, err := ComputePromotion(PromotionBoost, tt.duration, now)
			assert.NoError(t, err)
			assert.True(t, state.Boosted)
			if assert.NotNil(t, state.BoostExpiry) {
				assert.Equal(t, now.AddDate(0, 0, tt.wantDays), *state.BoostExpiry)
			}
			// Selecting boost clears featured.
			assert.False(t, state.Featured)
			assert.Nil(t, state.FeatureExpiry)
		})
	}
}

func TestComputePromotion_FeaturedClearsBoost(t *testing.T) {
	now := time.Now()

	state, err := ComputePromotion(PromotionFeatured, DurationTwoWeeks, now)
	assert.NoError(t, err)
	assert.True(t, state.Featured)
	assert.NotNil(t, state.FeatureExpiry)
	assert.False(t, state.Boosted)
	assert.Nil(t, state.BoostExpiry)
}

func TestComputePromotion_NoneClearsEverything(t *testing.T) {
	now := time.Now()

	// Duration is ignored for none, valid or not.
	for _, duration := range []PromotionDuration{DurationOneWeek, PromotionDuration("bogus"), ""} {
		state, err := ComputePromotion(PromotionNone, duration, now)
		assert.NoError(t, err)
		assert.False(t, state.Boosted)
		assert.Nil(t, state.BoostExpiry)
		assert.False(t, state.Featured)
		assert.Nil(t, state.FeatureExpiry)
	}
}

func TestComputePromotion_InvalidInputs(t *testing.T) {
	now := time.Now()

	_, err := ComputePromotion(PromotionBoost, PromotionDuration("3months"), now)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ComputePromotion(PromotionTier("platinum"), DurationOneWeek, now)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPromotionState_ExpiryBoundIsExclusive(t *testing.T) {
	expiry := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	state := PromotionState{Boosted: true, BoostExpiry: &expiry}

	assert.True(t, state.IsBoostedAt(expiry.Add(-time.Second)))
	// Inactive the instant now equals the expiry, and for anything after.
	assert.False(t, state.IsBoostedAt(expiry))
	assert.False(t, state.IsBoostedAt(expiry.Add(time.Second)))
}

func TestPromotionState_FlagWithoutExpiryIsInactive(t *testing.T) {
	// Expiry alone never flips the flag back, so a true flag with no expiry
	// (or a past one) must still read as inactive.
	now := time.Now()

	assert.False(t, PromotionState{Boosted: true}.IsBoostedAt(now))
	assert.False(t, PromotionState{Featured: true}.IsFeaturedAt(now))

	past := now.Add(-time.Hour)
	stale := PromotionState{Boosted: true, BoostExpiry: &past}
	assert.False(t, stale.IsBoostedAt(now))
	assert.False(t, stale.HasActivePromotionAt(now))
}

func TestAd_PromotionPredicates(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)

	ad := &Ad{Boosted: true, BoostExpiry: &future, Featured: true}
	assert.True(t, ad.IsBoostedAt(now))
	// Both flags may be simultaneously true in the data; each predicate is
	// computed independently.
	assert.False(t, ad.IsFeaturedAt(now))
	assert.True(t, ad.HasActivePromotionAt(now))
}
