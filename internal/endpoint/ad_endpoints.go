package endpoint

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

// AdEndpoints holds all endpoints for the ad engine
type AdEndpoints struct {
	ListAdsEndpoint        endpoint.Endpoint
	CompareEndpoint        endpoint.Endpoint
	ApplyLifecycleEndpoint endpoint.Endpoint
	SetPromotionEndpoint   endpoint.Endpoint
}

// MakeAdEndpoints creates endpoints for the listing, compare and lifecycle services
func MakeAdEndpoints(listing service.ListingService, compare service.CompareService, lifecycle service.AdLifecycleService) AdEndpoints {
	return AdEndpoints{
		ListAdsEndpoint:        makeListAdsEndpoint(listing),
		CompareEndpoint:        makeCompareEndpoint(compare),
		ApplyLifecycleEndpoint: makeApplyLifecycleEndpoint(lifecycle),
		SetPromotionEndpoint:   makeSetPromotionEndpoint(lifecycle),
	}
}

// ListAdsRequest represents a listing query for one actor
type ListAdsRequest struct {
	Actor  models.Actor
	Params models.ListingParams
}

// ListAdsResponse represents one page of listing results
type ListAdsResponse struct {
	Listing *models.ListingResponse `json:"listing,omitempty"`
	Err     error                   `json:"error,omitempty"`
}

// Failed implements the endpoint.Failer interface
func (r ListAdsResponse) Failed() error {
	return r.Err
}

// makeListAdsEndpoint creates the endpoint for listing ads
func makeListAdsEndpoint(s service.ListingService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ListAdsRequest)
		ads, total, err := s.ListAds(ctx, req.Actor, req.Params)
		if err != nil {
			return ListAdsResponse{Err: err}, nil
		}

		page := req.Params.Page
		if page < 1 {
			page = 1
		}
		limit := req.Params.Limit
		if limit < 1 || limit > 100 {
			limit = 20
		}

		return ListAdsResponse{
			Listing: &models.ListingResponse{
				Items: models.FromAds(ads, time.Now()),
				Total: total,
				Page:  page,
				Limit: limit,
			},
		}, nil
	}
}

// CompareRequest represents a side-by-side comparison of two ads
type CompareRequest struct {
	FirstID  string
	SecondID string
}

// CompareResponse represents a resolved comparison
type CompareResponse struct {
	Comparison *models.ComparisonResponse `json:"comparison,omitempty"`
	Err        error                      `json:"error,omitempty"`
}

// Failed implements the endpoint.Failer interface
func (r CompareResponse) Failed() error {
	return r.Err
}

// makeCompareEndpoint creates the endpoint for comparing two ads
func makeCompareEndpoint(s service.CompareService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(CompareRequest)
		comparison, err := s.Compare(ctx, req.FirstID, req.SecondID)
		if err != nil {
			return CompareResponse{Err: err}, nil
		}

		resp := comparison.ToResponse(time.Now())
		return CompareResponse{Comparison: &resp}, nil
	}
}

// ApplyLifecycleRequest represents one lifecycle action against an ad
type ApplyLifecycleRequest struct {
	AdID    string
	Action  models.Action
	Actor   models.Actor
	Payload models.TransitionPayload
}

// ApplyLifecycleResponse represents the ad after a lifecycle action
type ApplyLifecycleResponse struct {
	Ad  *models.AdResponse `json:"ad,omitempty"`
	Err error              `json:"error,omitempty"`
}

// Failed implements the endpoint.Failer interface
func (r ApplyLifecycleResponse) Failed() error {
	return r.Err
}

// makeApplyLifecycleEndpoint creates the endpoint for lifecycle actions
func makeApplyLifecycleEndpoint(s service.AdLifecycleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ApplyLifecycleRequest)
		ad, err := s.Apply(ctx, req.AdID, req.Action, req.Actor, req.Payload)
		if err != nil {
			return ApplyLifecycleResponse{Err: err}, nil
		}

		resp := ad.ToResponse(time.Now())
		return ApplyLifecycleResponse{Ad: &resp}, nil
	}
}

// SetPromotionRequest represents a promotion change for an ad
type SetPromotionRequest struct {
	AdID     string
	Actor    models.Actor
	Tier     models.PromotionTier
	Duration models.PromotionDuration
}

// SetPromotionResponse represents the ad after a promotion change
type SetPromotionResponse struct {
	Ad  *models.AdResponse `json:"ad,omitempty"`
	Err error              `json:"error,omitempty"`
}

// Failed implements the endpoint.Failer interface
func (r SetPromotionResponse) Failed() error {
	return r.Err
}

// makeSetPromotionEndpoint creates the endpoint for promotion changes
func makeSetPromotionEndpoint(s service.AdLifecycleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(SetPromotionRequest)
		ad, err := s.SetPromotion(ctx, req.AdID, req.Actor, req.Tier, req.Duration)
		if err != nil {
			return SetPromotionResponse{Err: err}, nil
		}

		resp := ad.ToResponse(time.Now())
		return SetPromotionResponse{Ad: &resp}, nil
	}
}
