package impl

import (
	"context"
	"testing"
	"time"

	"aevum/internal/domain/entity"
	"aevum/internal/domain/repository"
	mockRepo "aevum/internal/mocks/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardServiceFixtures struct {
	service          usecase.DashboardUsecase
	journalRepo      *mockRepo.MockJournalRepository
	orderRepo        *mockRepo.MockDNAOrderRepository
	subscriptionRepo *mockRepo.MockSubscriptionRepository
}

func createTestDashboardService(t *testing.T) dashboardServiceFixtures {
	journalRepo := mockRepo.NewMockJournalRepository(t)
	orderRepo := mockRepo.NewMockDNAOrderRepository(t)
	subscriptionRepo := mockRepo.NewMockSubscriptionRepository(t)

	svc := NewDashboardService(DashboardServiceParams{
		JournalRepo:      journalRepo,
		OrderRepo:        orderRepo,
		SubscriptionRepo: subscriptionRepo,
		Logger:           newDiscardLogger(),
	})

	return dashboardServiceFixtures{
		service:          svc,
		journalRepo:      journalRepo,
		orderRepo:        orderRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func TestDashboardService_GetDashboard_Aggregates(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()
	userID := uuid.New()

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	recentEntries := []*entity.JournalEntry{
		{UserID: userID, EntryDate: today, Mood: 7},
	}
	recentOrders := []*entity.DNAKitOrder{
		{UserID: userID, Status: entity.OrderStatusCompleted},
	}
	subscription := &entity.UserSubscription{
		UserID: userID,
		Status: entity.SubscriptionActive,
	}

	fx.journalRepo.On("ListEntryDatesByUser", ctx, userID).
		Return([]string{today, yesterday}, nil)
	fx.journalRepo.On("ListEntriesByUser", ctx, userID, repository.JournalEntryFilter{Limit: 5}).
		Return(recentEntries, int64(12), nil)
	fx.orderRepo.On("CountOrdersByUserAndStatus", ctx, userID).
		Return(map[entity.OrderStatus]int64{
			entity.OrderStatusPending:          1,
			entity.OrderStatusResultsGenerated: 1,
			entity.OrderStatusCompleted:        2,
		}, nil)
	fx.orderRepo.On("ListOrdersByUser", ctx, userID, 5, 0).
		Return(recentOrders, int64(4), nil)
	fx.subscriptionRepo.On("FindActiveByUser", ctx, userID).
		Return(subscription, nil)

	dashboard, err := fx.service.GetDashboard(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.Streak.CurrentStreak)
	assert.Equal(t, int64(12), dashboard.JournalEntryCount)
	assert.Equal(t, int64(3), dashboard.ReportsReady)
	assert.Equal(t, subscription, dashboard.Subscription)
	assert.Equal(t, recentEntries, dashboard.RecentEntries)
	assert.Equal(t, recentOrders, dashboard.RecentOrders)
}

func TestDashboardService_GetDashboard_NoSubscription(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.journalRepo.On("ListEntryDatesByUser", ctx, userID).Return(nil, nil)
	fx.journalRepo.On("ListEntriesByUser", ctx, userID, repository.JournalEntryFilter{Limit: 5}).
		Return(nil, int64(0), nil)
	fx.orderRepo.On("CountOrdersByUserAndStatus", ctx, userID).
		Return(map[entity.OrderStatus]int64{}, nil)
	fx.orderRepo.On("ListOrdersByUser", ctx, userID, 5, 0).
		Return(nil, int64(0), nil)
	fx.subscriptionRepo.On("FindActiveByUser", ctx, userID).
		Return(nil, repository.ErrSubscriptionNotFound)

	dashboard, err := fx.service.GetDashboard(ctx, userID)

	require.NoError(t, err)
	assert.Nil(t, dashboard.Subscription)
	assert.Equal(t, 0, dashboard.Streak.CurrentStreak)
	assert.Equal(t, int64(0), dashboard.ReportsReady)
}

func TestDashboardService_GetDashboard_SubscriptionLookupError(t *testing.T) {
	fx := createTestDashboardService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.journalRepo.On("ListEntryDatesByUser", ctx, userID).Return(nil, nil)
	fx.journalRepo.On("ListEntriesByUser", ctx, userID, repository.JournalEntryFilter{Limit: 5}).
		Return(nil, int64(0), nil)
	fx.orderRepo.On("CountOrdersByUserAndStatus", ctx, userID).
		Return(map[entity.OrderStatus]int64{}, nil)
	fx.orderRepo.On("ListOrdersByUser", ctx, userID, 5, 0).
		Return(nil, int64(0), nil)
	fx.subscriptionRepo.On("FindActiveByUser", ctx, userID).
		Return(nil, errors.New("connection reset"))

	dashboard, err := fx.service.GetDashboard(ctx, userID)

	assert.Nil(t, dashboard)
	assert.Error(t, err)
}
