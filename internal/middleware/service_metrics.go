package middleware

import (
	"context"

	"github.com/motorlane/adengine/internal/metrics"
	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

// serviceMetricsMiddleware implements metrics collection for AdLifecycleService
type serviceMetricsMiddleware struct {
	metrics *metrics.Metrics
	next    service.AdLifecycleService
}

// NewServiceMetricsMiddleware creates a new service metrics middleware
func NewServiceMetricsMiddleware(metrics *metrics.Metrics) func(service.AdLifecycleService) service.AdLifecycleService {
	return func(next service.AdLifecycleService) service.AdLifecycleService {
		return &serviceMetricsMiddleware{
			metrics: metrics,
			next:    next,
		}
	}
}

// Apply implements service.AdLifecycleService with business metrics
func (mw *serviceMetricsMiddleware) Apply(ctx context.Context, adID string, action models.Action, actor models.Actor, payload models.TransitionPayload) (*models.Ad, error) {
	ad, err := mw.next.Apply(ctx, adID, action, actor, payload)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	mw.metrics.RecordModerationAction(string(action), outcome)

	return ad, err
}

// SetPromotion implements service.AdLifecycleService with business metrics
func (mw *serviceMetricsMiddleware) SetPromotion(ctx context.Context, adID string, actor models.Actor, tier models.PromotionTier, duration models.PromotionDuration) (*models.Ad, error) {
	ad, err := mw.next.SetPromotion(ctx, adID, actor, tier, duration)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	mw.metrics.RecordModerationAction("set-promotion-"+string(tier), outcome)

	return ad, err
}
