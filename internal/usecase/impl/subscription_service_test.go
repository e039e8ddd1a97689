package impl

import (
	"context"
	"testing"
	"time"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	mockRepo "aevum/internal/mocks/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestSubscriptionService(t *testing.T) (usecase.SubscriptionUsecase, *mockRepo.MockSubscriptionRepository) {
	subRepo := mockRepo.NewMockSubscriptionRepository(t)

	txManager := &mockRepo.PassthroughTxManager{Factory: &mockRepo.StubRepositoryFactory{
		Subscriptions: subRepo,
	}}

	svc := NewSubscriptionService(SubscriptionServiceParams{
		TxManager:        txManager,
		SubscriptionRepo: subRepo,
		Logger:           newDiscardLogger(),
	})

	return svc, subRepo
}

func monthlyPlan() *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		ID:         uuid.New(),
		Code:       "premium_monthly",
		Name:       "Premium Monthly",
		PriceCents: 990,
		Interval:   entity.IntervalMonthly,
		IsActive:   true,
	}
}

func TestSubscriptionService_Subscribe_PlanNotFound(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	planID := uuid.New()

	subRepo.On("FindPlanByID", ctx, planID).Return(nil, repository.ErrPlanNotFound)

	sub, err := svc.Subscribe(ctx, uuid.New(), planID)

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, domainerrors.ErrPlanNotFound)
}

func TestSubscriptionService_Subscribe_InactivePlan(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	plan := monthlyPlan()
	plan.IsActive = false

	subRepo.On("FindPlanByID", ctx, plan.ID).Return(plan, nil)

	sub, err := svc.Subscribe(ctx, uuid.New(), plan.ID)

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, domainerrors.ErrPlanNotFound)
}

func TestSubscriptionService_Subscribe_FirstSubscription(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()
	plan := monthlyPlan()

	subRepo.On("FindPlanByID", ctx, plan.ID).Return(plan, nil)
	subRepo.On("FindActiveByUser", ctx, userID).Return(nil, repository.ErrSubscriptionNotFound)
	subRepo.On("CreateSubscription", ctx, mock.AnythingOfType("*entity.UserSubscription")).
		Run(func(args mock.Arguments) {
			sub := args.Get(1).(*entity.UserSubscription)
			sub.ID = uuid.New()
		}).
		Return(nil)

	sub, err := svc.Subscribe(ctx, userID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	assert.Equal(t, plan, sub.Plan)
	// A monthly plan's period ends one month after it starts.
	assert.Equal(t, sub.CurrentPeriodStart.AddDate(0, 1, 0), sub.CurrentPeriodEnd)
}

func TestSubscriptionService_Subscribe_YearlyPeriod(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()
	plan := monthlyPlan()
	plan.Code = "premium_yearly"
	plan.Interval = entity.IntervalYearly

	subRepo.On("FindPlanByID", ctx, plan.ID).Return(plan, nil)
	subRepo.On("FindActiveByUser", ctx, userID).Return(nil, repository.ErrSubscriptionNotFound)
	subRepo.On("CreateSubscription", ctx, mock.AnythingOfType("*entity.UserSubscription")).Return(nil)

	sub, err := svc.Subscribe(ctx, userID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, sub.CurrentPeriodStart.AddDate(1, 0, 0), sub.CurrentPeriodEnd)
}

func TestSubscriptionService_Subscribe_ReplacesActiveSubscription(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()
	plan := monthlyPlan()
	existing := &entity.UserSubscription{
		ID:     uuid.New(),
		UserID: userID,
		PlanID: uuid.New(),
		Status: entity.SubscriptionActive,
	}

	subRepo.On("FindPlanByID", ctx, plan.ID).Return(plan, nil)
	subRepo.On("FindActiveByUser", ctx, userID).Return(existing, nil)
	subRepo.On("UpdateSubscription", ctx, mock.MatchedBy(func(sub *entity.UserSubscription) bool {
		return sub.ID == existing.ID && sub.Status == entity.SubscriptionCancelled && sub.CancelledAt != nil
	})).Return(nil)
	subRepo.On("CreateSubscription", ctx, mock.AnythingOfType("*entity.UserSubscription")).Return(nil)

	sub, err := svc.Subscribe(ctx, userID, plan.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	assert.Equal(t, plan.ID, sub.PlanID)
}

func TestSubscriptionService_CancelSubscription_Success(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()
	periodEnd := time.Now().AddDate(0, 0, 10)
	active := &entity.UserSubscription{
		ID:               uuid.New(),
		UserID:           userID,
		Status:           entity.SubscriptionActive,
		CurrentPeriodEnd: periodEnd,
	}

	subRepo.On("FindActiveByUser", ctx, userID).Return(active, nil)
	subRepo.On("UpdateSubscription", ctx, mock.AnythingOfType("*entity.UserSubscription")).Return(nil)

	sub, err := svc.CancelSubscription(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionCancelled, sub.Status)
	require.NotNil(t, sub.CancelledAt)
	// Access continues until the paid period runs out.
	assert.True(t, sub.AccessibleAt(time.Now()))
	assert.False(t, sub.AccessibleAt(periodEnd.Add(time.Hour)))
}

func TestSubscriptionService_CancelSubscription_AlreadyCancelled(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()
	cancelledAt := time.Now().Add(-time.Hour)
	cancelled := &entity.UserSubscription{
		ID:          uuid.New(),
		UserID:      userID,
		Status:      entity.SubscriptionCancelled,
		CancelledAt: &cancelledAt,
	}

	subRepo.On("FindActiveByUser", ctx, userID).Return(cancelled, nil)

	sub, err := svc.CancelSubscription(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, cancelled, sub)
	subRepo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything)
}

func TestSubscriptionService_CancelSubscription_NoActive(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()

	subRepo.On("FindActiveByUser", ctx, userID).Return(nil, repository.ErrSubscriptionNotFound)

	sub, err := svc.CancelSubscription(ctx, userID)

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, domainerrors.ErrSubscriptionNotFound)
}

func TestSubscriptionService_GetCurrentSubscription_NoActive(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	userID := uuid.New()

	subRepo.On("FindActiveByUser", ctx, userID).Return(nil, repository.ErrSubscriptionNotFound)

	sub, err := svc.GetCurrentSubscription(ctx, userID)

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, domainerrors.ErrSubscriptionNotFound)
}

func TestSubscriptionService_ListPlans(t *testing.T) {
	svc, subRepo := createTestSubscriptionService(t)

	ctx := context.Background()
	plans := []*entity.SubscriptionPlan{monthlyPlan()}

	subRepo.On("ListPlans", ctx).Return(plans, nil)

	got, err := svc.ListPlans(ctx)

	require.NoError(t, err)
	assert.Equal(t, plans, got)
}
