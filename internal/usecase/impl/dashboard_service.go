package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	"aevum/internal/domain/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const dashboardRecentLimit = 5

// dashboardService implements the DashboardUsecase interface by composing
// the journal, DNA, and subscription modules into one payload.
type dashboardService struct {
	journalRepo      repository.JournalRepository
	orderRepo        repository.DNAOrderRepository
	subscriptionRepo repository.SubscriptionRepository
	logger           *slog.Logger
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	JournalRepo      repository.JournalRepository
	OrderRepo        repository.DNAOrderRepository
	SubscriptionRepo repository.SubscriptionRepository
	Logger           *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		journalRepo:      params.JournalRepo,
		orderRepo:        params.OrderRepo,
		subscriptionRepo: params.SubscriptionRepo,
		logger:           params.Logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDashboard assembles the cross-module home dashboard for a user.
func (srv *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*usecase.DashboardOutput, error) {
	entryDates, err := srv.journalRepo.ListEntryDatesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load journal dates")
	}

	recentEntries, entryCount, err := srv.journalRepo.ListEntriesByUser(ctx, userID, repository.JournalEntryFilter{
		Limit: dashboardRecentLimit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent journal entries")
	}

	orderCounts, err := srv.orderRepo.CountOrdersByUserAndStatus(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	recentOrders, _, err := srv.orderRepo.ListOrdersByUser(ctx, userID, dashboardRecentLimit, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent orders")
	}

	// The dashboard renders fine without a subscription; only real lookup
	// failures propagate.
	subscription, err := srv.subscriptionRepo.FindActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
		return nil, errors.Wrap(err, "failed to load subscription")
	}

	streak, malformed := computeStreak(entryDates, time.Now())
	if malformed > 0 {
		srv.log(ctx).Warn("Skipped malformed entry dates while computing streak",
			slog.Any("userID", userID), slog.Int("malformed", malformed))
	}

	srv.log(ctx).Debug("Dashboard assembled", slog.Any("userID", userID), slog.Int64("journalEntries", entryCount))

	return &usecase.DashboardOutput{
		Streak:            streak,
		JournalEntryCount: entryCount,
		OrderCounts:       orderCounts,
		ReportsReady:      orderCounts[entity.OrderStatusResultsGenerated] + orderCounts[entity.OrderStatusCompleted],
		Subscription:      subscription,
		RecentEntries:     recentEntries,
		RecentOrders:      recentOrders,
	}, nil
}
