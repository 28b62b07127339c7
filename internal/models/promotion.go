package models

import (
	"fmt"
	"strings"
	"time"
)

// PromotionTier is the promotional visibility tier requested for an ad
type PromotionTier string

// enum values for PromotionTier
const (
	PromotionNone     PromotionTier = "none"
	PromotionBoost    PromotionTier = "boost"
	PromotionFeatured PromotionTier = "featured"
)

// PromotionDuration is how long a promotion runs
type PromotionDuration string

// enum values for PromotionDuration
const (
	DurationOneWeek  PromotionDuration = "1week"
	DurationTwoWeeks PromotionDuration = "2weeks"
	DurationOneMonth PromotionDuration = "1month"
)

// Fixed calendar days, not month-aware.
var promotionDurations = map[PromotionDuration]time.Duration{
	DurationOneWeek:  7 * 24 * time.Hour,
	DurationTwoWeeks: 14 * 24 * time.Hour,
	DurationOneMonth: 30 * 24 * time.Hour,
}

// ParsePromotionTier maps a request value onto a promotion tier
func ParsePromotionTier(value string) (PromotionTier, error) {
	switch tier := PromotionTier(strings.ToLower(value)); tier {
	case PromotionNone, PromotionBoost, PromotionFeatured:
		return tier, nil
	default:
		return "", fmt.Errorf("%w: unknown promotion tier %q", ErrInvalidArgument, value)
	}
}

// PromotionState is the flag/expiry pair for both promotion tiers.
type PromotionState struct {
	Boosted       bool       `json:"boosted"`
	BoostExpiry   *time.Time `json:"boost_expiry,omitempty"`
	Featured      bool       `json:"featured"`
	FeatureExpiry *time.Time `json:"feature_expiry,omitempty"`
}

// ComputePromotion computes the new promotion state for a tier/duration pair
// at the given instant. Selecting one tier always clears the other, making
// this the single authoritative entry point for tier exclusivity instead of
// relying on caller discipline. PromotionNone removes any existing promotion
// and ignores the duration.
func ComputePromotion(tier PromotionTier, duration PromotionDuration, now time.Time) (PromotionState, error) {
	if tier == PromotionNone {
		return PromotionState{}, nil
	}

	d, ok := promotionDurations[duration]
	if !ok {
		return PromotionState{}, fmt.Errorf("%w: unknown promotion duration %q", ErrInvalidArgument, duration)
	}
	expiry := now.Add(d)

	switch tier {
	case PromotionBoost:
		return PromotionState{Boosted: true, BoostExpiry: &expiry}, nil
	case PromotionFeatured:
		return PromotionState{Featured: true, FeatureExpiry: &expiry}, nil
	default:
		return PromotionState{}, fmt.Errorf("%w: unknown promotion tier %q", ErrInvalidArgument, tier)
	}
}

// IsBoostedAt reports whether the boost tier is active at the given instant.
// Expiry alone never flips the flag back; activity is computed at read time.
func (p PromotionState) IsBoostedAt(now time.Time) bool {
	return p.Boosted && p.BoostExpiry != nil && p.BoostExpiry.After(now)
}

// IsFeaturedAt reports whether the featured tier is active at the given instant.
func (p PromotionState) IsFeaturedAt(now time.Time) bool {
	return p.Featured && p.FeatureExpiry != nil && p.FeatureExpiry.After(now)
}

// HasActivePromotionAt reports whether either tier is active at the given instant.
func (p PromotionState) HasActivePromotionAt(now time.Time) bool {
	return p.IsBoostedAt(now) || p.IsFeaturedAt(now)
}
