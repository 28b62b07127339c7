package repository

import (
	"context"

	"github.com/motorlane/adengine/internal/metrics"
	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

// InstrumentedRepository wraps a repository with metrics collection
type InstrumentedRepository struct {
	next    service.AdRepository
	metrics *metrics.Metrics
}

// NewInstrumentedRepository creates a new instrumented repository
func NewInstrumentedRepository(repo service.AdRepository, metrics *metrics.Metrics) service.AdRepository {
	return &InstrumentedRepository{
		next:    repo,
		metrics: metrics,
	}
}

// FindAdByID implements service.AdRepository with metrics
func (r *InstrumentedRepository) FindAdByID(ctx context.Context, id string) (ad *models.Ad, err error) {
	defer func() {
		r.metrics.RecordDatabaseQuery("select", "ads")
		if err != nil {
			r.metrics.RecordDatabaseError("select", "query_error")
		}
	}()

	ad, err = r.next.FindAdByID(ctx, id)
	return
}

// UpdateAdStatus implements service.AdRepository with metrics
func (r *InstrumentedRepository) UpdateAdStatus(ctx context.Context, id string, update models.StatusUpdate) (ad *models.Ad, err error) {
	defer func() {
		r.metrics.RecordDatabaseQuery("update", "ads")
		if err != nil {
			r.metrics.RecordDatabaseError("update", "query_error")
		}
	}()

	ad, err = r.next.UpdateAdStatus(ctx, id, update)
	return
}

// UpdateAdPromotion implements service.AdRepository with metrics
func (r *InstrumentedRepository) UpdateAdPromotion(ctx context.Context, id string, promotion models.PromotionState) (ad *models.Ad, err error) {
	defer func() {
		r.metrics.RecordDatabaseQuery("update", "ads")
		if err != nil {
			r.metrics.RecordDatabaseError("update", "query_error")
		}
	}()

	ad, err = r.next.UpdateAdPromotion(ctx, id, promotion)
	return
}

// QueryAds implements service.AdRepository with metrics
func (r *InstrumentedRepository) QueryAds(ctx context.Context, filter models.AdFilter, page, limit int) (ads []models.Ad, total int, err error) {
	defer func() {
		r.metrics.RecordDatabaseQuery("select", "ads")
		if err != nil {
			r.metrics.RecordDatabaseError("select", "query_error")
		}
	}()

	ads, total, err = r.next.QueryAds(ctx, filter, page, limit)
	return
}
