package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/motorlane/adengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAdRepository is a mock implementation of AdRepository
type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) FindAdByID(ctx context.Context, id string) (*models.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ad), args.Error(1)
}

func (m *MockAdRepository) UpdateAdStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Ad, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ad), args.Error(1)
}

func (m *MockAdRepository) UpdateAdPromotion(ctx context.Context, id string, promotion models.PromotionState) (*models.Ad, error) {
	args := m.Called(ctx, id, promotion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ad), args.Error(1)
}

func (m *MockAdRepository) QueryAds(ctx context.Context, filter models.AdFilter, page, limit int) ([]models.Ad, int, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]models.Ad), args.Int(1), args.Error(2)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendApprovalNotice(ctx context.Context, email, name, adTitle, adID string) error {
	args := m.Called(ctx, email, name, adTitle, adID)
	return args.Error(0)
}

func (m *MockNotifier) SendSubmittedNotice(ctx context.Context, email, name, adTitle string) error {
	args := m.Called(ctx, email, name, adTitle)
	return args.Error(0)
}

func (m *MockNotifier) SendRejectionNotice(ctx context.Context, email, name, adTitle, reason string) error {
	args := m.Called(ctx, email, name, adTitle, reason)
	return args.Error(0)
}

var (
	owner = models.Actor{ID: "user-1", Role: models.RoleUser}
	admin = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
)

func pendingAd() *models.Ad {
	return &models.Ad{
		ID:           "ad-1",
		Title:        "Suzuki Alto 2016",
		Status:       models.StatusPendingReview,
		Published:    true,
		CreatedBy:    "user-1",
		CreatorName:  "Nadia",
		CreatorEmail: "nadia@example.com",
	}
}

func TestLifecycleService_Apply_ApproveSendsNotice(t *testing.T) {
	mockRepo := &MockAdRepository{}
	mockNotifier := &MockNotifier{}
	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())

	ad := pendingAd()
	approved := *ad
	approved.Status = models.StatusActive

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(ad, nil)
	mockRepo.On("UpdateAdStatus", mock.Anything, "ad-1", models.StatusUpdate{
		Status:    models.StatusActive,
		Published: true,
		IsDraft:   false,
	}).Return(&approved, nil)
	mockNotifier.On("SendApprovalNotice", mock.Anything, "nadia@example.com", "Nadia", "Suzuki Alto 2016", "ad-1").Return(nil)

	result, err := svc.Apply(context.Background(), "ad-1", models.ActionApprove, admin, models.TransitionPayload{})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusActive, result.Status)

	mockRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestLifecycleService_Apply_NotifierFailureIsSwallowed(t *testing.T) {
	mockRepo := &MockAdRepository{}
	mockNotifier := &MockNotifier{}
	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())

	ad := pendingAd()
	approved := *ad
	approved.Status = models.StatusActive

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(ad, nil)
	mockRepo.On("UpdateAdStatus", mock.Anything, "ad-1", mock.Anything).Return(&approved, nil)
	mockNotifier.On("SendApprovalNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp connection refused"))

	// The transition is authoritative; a failing mail transport must not
	// surface to the moderator.
	result, err := svc.Apply(context.Background(), "ad-1", models.ActionApprove, admin, models.TransitionPayload{})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusActive, result.Status)

	mockNotifier.AssertExpectations(t)
}

func TestLifecycleService_Apply_InvalidTransitionSkipsWrite(t *testing.T) {
	mockRepo := &MockAdRepository{}
	mockNotifier := &MockNotifier{}
	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())

	ad := pendingAd()
	ad.Status = models.StatusExpired

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(ad, nil)

	_, err := svc.Apply(context.Background(), "ad-1", models.ActionApprove, admin, models.TransitionPayload{})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	mockRepo.AssertNotCalled(t, "UpdateAdStatus", mock.Anything, mock.Anything, mock.Anything)
	mockNotifier.AssertNotCalled(t, "SendApprovalNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycleService_Apply_PermissionDeniedSkipsWrite(t *testing.T) {
	mockRepo := &MockAdRepository{}
	mockNotifier := &MockNotifier{}
	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(pendingAd(), nil)

	_, err := svc.Apply(context.Background(), "ad-1", models.ActionApprove, owner, models.TransitionPayload{})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	mockRepo.AssertNotCalled(t, "UpdateAdStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycleService_Apply_NotFound(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewLifecycleService(mockRepo, &MockNotifier{}, log.NewNopLogger())

	mockRepo.On("FindAdByID", mock.Anything, "missing").Return(nil, models.ErrNotFound)

	_, err := svc.Apply(context.Background(), "missing", models.ActionApprove, admin, models.TransitionPayload{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLifecycleService_Apply_RejectSendsReason(t *testing.T) {
	mockRepo := &MockAdRepository{}
	mockNotifier := &MockNotifier{}
	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())

	ad := pendingAd()
	rejected := *ad
	rejected.Status = models.StatusRejected
	rejected.Published = false

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(ad, nil)
	mockRepo.On("UpdateAdStatus", mock.Anything, "ad-1", mock.MatchedBy(func(update models.StatusUpdate) bool {
		return update.Status == models.StatusRejected &&
			!update.Published &&
			update.RejectionDescription != nil &&
			*update.RejectionDescription == "odometer mismatch"
	})).Return(&rejected, nil)
	mockNotifier.On("SendRejectionNotice", mock.Anything, "nadia@example.com", "Nadia", "Suzuki Alto 2016", "odometer mismatch").Return(nil)

	_, err := svc.Apply(context.Background(), "ad-1", models.ActionReject, admin, models.TransitionPayload{
		RejectionDescription: "odometer mismatch",
	})
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestLifecycleService_Apply_FirstSubmissionNotifies(t *testing.T) {
	mockRepo := &MockAdRepository{}
	mockNotifier := &MockNotifier{}
	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())

	ad := pendingAd()
	ad.Status = models.StatusDraft
	ad.IsDraft = true
	submitted := *ad
	submitted.Status = models.StatusPendingReview

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(ad, nil)
	mockRepo.On("UpdateAdStatus", mock.Anything, "ad-1", mock.Anything).Return(&submitted, nil)
	mockNotifier.On("SendSubmittedNotice", mock.Anything, "nadia@example.com", "Nadia", "Suzuki Alto 2016").Return(nil)

	_, err := svc.Apply(context.Background(), "ad-1", models.ActionSubmitForReview, owner, models.TransitionPayload{})
	assert.NoError(t, err)

	mockNotifier.AssertExpectations(t)
}

func TestLifecycleService_SetPromotion(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewLifecycleService(mockRepo, &MockNotifier{}, log.NewNopLogger())

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ad := pendingAd()
	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(ad, nil)
	mockRepo.On("UpdateAdPromotion", mock.Anything, "ad-1", mock.MatchedBy(func(p models.PromotionState) bool {
		return p.Boosted && p.BoostExpiry != nil && p.BoostExpiry.Equal(now.AddDate(0, 0, 7)) && !p.Featured
	})).Return(ad, nil)

	_, err := svc.SetPromotion(context.Background(), "ad-1", admin, models.PromotionBoost, models.DurationOneWeek)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestLifecycleService_SetPromotion_NonAdmin(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewLifecycleService(mockRepo, &MockNotifier{}, log.NewNopLogger())

	_, err := svc.SetPromotion(context.Background(), "ad-1", owner, models.PromotionBoost, models.DurationOneWeek)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	mockRepo.AssertNotCalled(t, "UpdateAdPromotion", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycleService_SetPromotion_InvalidDuration(t *testing.T) {
	mockRepo := &MockAdRepository{}
	svc := NewLifecycleService(mockRepo, &MockNotifier{}, log.NewNopLogger())

	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(pendingAd(), nil)

	_, err := svc.SetPromotion(context.Background(), "ad-1", admin, models.PromotionBoost, models.PromotionDuration("6weeks"))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	mockRepo.AssertNotCalled(t, "UpdateAdPromotion", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycleService_EndToEndModeration(t *testing.T) {
	// draft -> pending -> active -> rejected, with each write feeding the
	// next snapshot the way the persistence layer would.
	mockNotifier := &MockNotifier{}
	mockNotifier.On("SendSubmittedNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendApprovalNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendRejectionNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	current := pendingAd()
	current.Status = models.StatusDraft
	current.IsDraft = true
	current.Published = true // created with publish intent

	mockRepo := &MockAdRepository{}
	mockRepo.On("FindAdByID", mock.Anything, "ad-1").Return(current, nil)
	mockRepo.On("UpdateAdStatus", mock.Anything, "ad-1", mock.Anything).Run(func(args mock.Arguments) {
		update := args.Get(2).(models.StatusUpdate)
		current.Status = update.Status
		current.Published = update.Published
		current.IsDraft = update.IsDraft
		current.RejectionDescription = update.RejectionDescription
	}).Return(current, nil)

	svc := NewLifecycleService(mockRepo, mockNotifier, log.NewNopLogger())
	ctx := context.Background()

	_, err := svc.Apply(ctx, "ad-1", models.ActionSubmitForReview, owner, models.TransitionPayload{})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPendingReview, current.Status)

	_, err = svc.Apply(ctx, "ad-1", models.ActionApprove, admin, models.TransitionPayload{})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusActive, current.Status)
	assert.True(t, current.Published)
	assert.False(t, current.IsDraft)

	_, err = svc.Apply(ctx, "ad-1", models.ActionReject, admin, models.TransitionPayload{RejectionDescription: "sold elsewhere"})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, current.Status)
	assert.False(t, current.Published)
	if assert.NotNil(t, current.RejectionDescription) {
		assert.Equal(t, "sold elsewhere", *current.RejectionDescription)
	}
}
