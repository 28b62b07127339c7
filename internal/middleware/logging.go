package middleware

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/motorlane/adengine/internal/identity"
	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

// loggingMiddleware implements logging middleware for AdLifecycleService
type loggingMiddleware struct {
	logger log.Logger
	next   service.AdLifecycleService
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger log.Logger) func(service.AdLifecycleService) service.AdLifecycleService {
	return func(next service.AdLifecycleService) service.AdLifecycleService {
		return &loggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

// Apply implements service.AdLifecycleService with enhanced logging
func (mw *loggingMiddleware) Apply(ctx context.Context, adID string, action models.Action, actor models.Actor, payload models.TransitionPayload) (ad *models.Ad, err error) {
	defer func(begin time.Time) {
		logFields := []interface{}{
			"method", "Apply",
			"request_id", identity.RequestIDFromContext(ctx),
			"ad_id", adID,
			"action", action,
			"actor_role", actor.Role,
			"took", time.Since(begin),
		}

		if err != nil {
			logFields = append(logFields, "error", err.Error(), "success", false)
		} else {
			logFields = append(logFields, "status", ad.Status, "success", true)
		}

		mw.logger.Log(logFields...)
	}(time.Now())

	return mw.next.Apply(ctx, adID, action, actor, payload)
}

// SetPromotion implements service.AdLifecycleService with enhanced logging
func (mw *loggingMiddleware) SetPromotion(ctx context.Context, adID string, actor models.Actor, tier models.PromotionTier, duration models.PromotionDuration) (ad *models.Ad, err error) {
	defer func(begin time.Time) {
		logFields := []interface{}{
			"method", "SetPromotion",
			"request_id", identity.RequestIDFromContext(ctx),
			"ad_id", adID,
			"tier", tier,
			"duration", duration,
			"took", time.Since(begin),
		}

		if err != nil {
			logFields = append(logFields, "error", err.Error(), "success", false)
		} else {
			logFields = append(logFields, "success", true)
		}

		mw.logger.Log(logFields...)
	}(time.Now())

	return mw.next.SetPromotion(ctx, adID, actor, tier, duration)
}

// listingLoggingMiddleware implements logging middleware for ListingService
type listingLoggingMiddleware struct {
	logger log.Logger
	next   service.ListingService
}

// NewListingLoggingMiddleware creates a new listing logging middleware
func NewListingLoggingMiddleware(logger log.Logger) func(service.ListingService) service.ListingService {
	return func(next service.ListingService) service.ListingService {
		return &listingLoggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

// ListAds implements service.ListingService with enhanced logging
func (mw *listingLoggingMiddleware) ListAds(ctx context.Context, actor models.Actor, params models.ListingParams) (ads []models.Ad, total int, err error) {
	defer func(begin time.Time) {
		logFields := []interface{}{
			"method", "ListAds",
			"request_id", identity.RequestIDFromContext(ctx),
			"actor_role", actor.Role,
			"filter_by_user", params.FilterByUser,
			"listing_type", params.ListingType,
			"page", params.Page,
			"results", len(ads),
			"took", time.Since(begin),
		}

		if err != nil {
			logFields = append(logFields, "error", err.Error(), "success", false)
		} else {
			logFields = append(logFields, "success", true)
		}

		mw.logger.Log(logFields...)
	}(time.Now())

	return mw.next.ListAds(ctx, actor, params)
}
