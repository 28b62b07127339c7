package models

import (
	"fmt"
	"strings"
	"time"
)

// Ad is a vehicle listing going through the marketplace lifecycle.
// Status is the source of truth; Published and IsDraft are stored for
// compatibility with older readers but are always recomputed from Status
// on every transition so the two can never drift apart.
type Ad struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Brand       string      `json:"brand" db:"brand"`
	Model       string      `json:"model" db:"model"`
	Year        *int        `json:"year,omitempty" db:"year"`
	Price       *float64    `json:"price,omitempty" db:"price"`
	Mileage     *int        `json:"mileage,omitempty" db:"mileage"`
	EngineCC    *int        `json:"engine_capacity,omitempty" db:"engine_capacity"`
	Location    string      `json:"location" db:"location"`
	Phone       string      `json:"phone" db:"phone"`
	Whatsapp    string      `json:"whatsapp" db:"whatsapp"`
	ListingType ListingType `json:"listing_type" db:"listing_type"`

	Status               AdStatus `json:"status" db:"status"`
	Published            bool     `json:"published" db:"published"`
	IsDraft              bool     `json:"is_draft" db:"is_draft"`
	RejectionDescription *string  `json:"rejection_description,omitempty" db:"rejection_description"`

	CreatedBy    string  `json:"created_by" db:"created_by"`
	CreatorName  string  `json:"creator_name" db:"creator_name"`
	CreatorEmail string  `json:"creator_email" db:"creator_email"`
	OrgID        *string `json:"org_id,omitempty" db:"org_id"`

	Boosted       bool       `json:"boosted" db:"boosted"`
	BoostExpiry   *time.Time `json:"boost_expiry,omitempty" db:"boost_expiry"`
	Featured      bool       `json:"featured" db:"featured"`
	FeatureExpiry *time.Time `json:"feature_expiry,omitempty" db:"feature_expiry"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AdStatus represents the lifecycle status of an ad
type AdStatus string

// enum values for AdStatus
const (
	StatusDraft         AdStatus = "DRAFT"
	StatusPendingReview AdStatus = "PENDING_REVIEW"
	StatusActive        AdStatus = "ACTIVE"
	StatusRejected      AdStatus = "REJECTED"
	// StatusExpired is set by an external time-based sweep, never by the
	// lifecycle engine. It is terminal.
	StatusExpired AdStatus = "EXPIRED"
)

// ListingType represents the kind of listing an ad is
type ListingType string

// enum values for ListingType
const (
	ListingSell ListingType = "SELL"
	ListingWant ListingType = "WANT"
	ListingRent ListingType = "RENT"
	ListingHire ListingType = "HIRE"
)

// Role is the access level of the actor performing an operation
type Role string

// enum values for Role
const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Actor is the identity performing an operation. It is threaded explicitly
// into every engine call instead of being pulled from ambient request state.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin returns true if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns returns true if the actor is the exclusive creator of the ad
func (a Actor) Owns(ad *Ad) bool {
	return a.ID != "" && a.ID == ad.CreatedBy
}

// IsPublished reports whether the ad is live on the public listing.
func (a *Ad) IsPublished() bool {
	return a.Status == StatusActive && a.Published
}

// IsExpired reports whether the external sweep has expired the ad.
func (a *Ad) IsExpired() bool {
	return a.Status == StatusExpired
}

// IsBoostedAt reports whether the boost promotion is active at the given
// instant. The expiry bound is exclusive: the boost is already inactive the
// moment now equals the expiry.
func (a *Ad) IsBoostedAt(now time.Time) bool {
	return a.Boosted && a.BoostExpiry != nil && a.BoostExpiry.After(now)
}

// IsFeaturedAt reports whether the featured promotion is active at the given instant.
func (a *Ad) IsFeaturedAt(now time.Time) bool {
	return a.Featured && a.FeatureExpiry != nil && a.FeatureExpiry.After(now)
}

// HasActivePromotionAt reports whether any promotion tier is currently
// active. Used to warn admins that changing tiers removes an existing one.
func (a *Ad) HasActivePromotionAt(now time.Time) bool {
	return a.IsBoostedAt(now) || a.IsFeaturedAt(now)
}

// ParseListingType normalizes a listing type value. Empty input and "all"
// mean no restriction and return the empty ListingType.
func ParseListingType(value string) (ListingType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" || normalized == "ALL" {
		return "", nil
	}

	switch ListingType(normalized) {
	case ListingSell, ListingWant, ListingRent, ListingHire:
		return ListingType(normalized), nil
	default:
		return "", fmt.Errorf("%w: unknown listing type %q", ErrInvalidArgument, value)
	}
}

// ParseRole normalizes a role value, defaulting unknown values to anonymous.
func ParseRole(value string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return RoleAnonymous
	}
}
