package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/motorlane/adengine/internal/models"
)

// AdLifecycleService drives ads through the moderation state machine and
// owns promotion updates.
type AdLifecycleService interface {
	Apply(ctx context.Context, adID string, action models.Action, actor models.Actor, payload models.TransitionPayload) (*models.Ad, error)
	SetPromotion(ctx context.Context, adID string, actor models.Actor, tier models.PromotionTier, duration models.PromotionDuration) (*models.Ad, error)
}

// AdRepository interface for data access
type AdRepository interface {
	FindAdByID(ctx context.Context, id string) (*models.Ad, error)
	UpdateAdStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Ad, error)
	UpdateAdPromotion(ctx context.Context, id string, promotion models.PromotionState) (*models.Ad, error)
	QueryAds(ctx context.Context, filter models.AdFilter, page, limit int) ([]models.Ad, int, error)
}

// Notifier sends templated lifecycle emails. Every send is fire-and-forget:
// failures are logged by the caller and never block a transition.
type Notifier interface {
	SendApprovalNotice(ctx context.Context, email, name, adTitle, adID string) error
	SendSubmittedNotice(ctx context.Context, email, name, adTitle string) error
	SendRejectionNotice(ctx context.Context, email, name, adTitle, reason string) error
}

// LifecycleService handles ad moderation requests
type LifecycleService struct {
	repository AdRepository
	notifier   Notifier
	logger     log.Logger
	now        func() time.Time
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(repo AdRepository, notifier Notifier, logger log.Logger) *LifecycleService {
	return &LifecycleService{
		repository: repo,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// Apply runs one lifecycle action against an ad: load the snapshot, compute
// the transition as a pure function, persist it as a single status write,
// then dispatch the resulting notice best-effort. The write is authoritative;
// a flaky mail transport can never roll back or fail a moderation action.
func (s *LifecycleService) Apply(ctx context.Context, adID string, action models.Action, actor models.Actor, payload models.TransitionPayload) (*models.Ad, error) {
	ad, err := s.repository.FindAdByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	result, err := models.Transition(ad, action, actor, payload)
	if err != nil {
		return nil, err
	}

	updated, err := s.repository.UpdateAdStatus(ctx, adID, result.ToStatusUpdate())
	if err != nil {
		return nil, err
	}

	s.dispatchNotice(ctx, updated, result)

	return updated, nil
}

// dispatchNotice sends the notification tied to a committed transition.
// Errors are swallowed after logging.
func (s *LifecycleService) dispatchNotice(ctx context.Context, ad *models.Ad, result models.TransitionResult) {
	var err error

	switch result.Notice {
	case models.NoticeApproval:
		err = s.notifier.SendApprovalNotice(ctx, ad.CreatorEmail, ad.CreatorName, ad.Title, ad.ID)
	case models.NoticeSubmitted:
		err = s.notifier.SendSubmittedNotice(ctx, ad.CreatorEmail, ad.CreatorName, ad.Title)
	case models.NoticeRejection:
		reason := ""
		if result.RejectionDescription != nil {
			reason = *result.RejectionDescription
		}
		err = s.notifier.SendRejectionNotice(ctx, ad.CreatorEmail, ad.CreatorName, ad.Title, reason)
	default:
		return
	}

	if err != nil {
		s.logger.Log(
			"method", "dispatchNotice",
			"notice", result.Notice,
			"ad_id", ad.ID,
			"error", err.Error(),
		)
	}
}

// SetPromotion is the single authoritative entry point for promotion
// changes. Selecting a tier always clears the other one; tier none removes
// any existing promotion.
func (s *LifecycleService) SetPromotion(ctx context.Context, adID string, actor models.Actor, tier models.PromotionTier, duration models.PromotionDuration) (*models.Ad, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: promotion changes require the admin role", models.ErrPermissionDenied)
	}

	if _, err := s.repository.FindAdByID(ctx, adID); err != nil {
		return nil, err
	}

	promotion, err := models.ComputePromotion(tier, duration, s.now())
	if err != nil {
		return nil, err
	}

	return s.repository.UpdateAdPromotion(ctx, adID, promotion)
}
