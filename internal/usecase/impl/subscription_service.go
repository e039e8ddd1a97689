package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	txManager        repository.TransactionManager
	subscriptionRepo repository.SubscriptionRepository
	logger           *slog.Logger
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	SubscriptionRepo repository.SubscriptionRepository
	Logger           *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		txManager:        params.TxManager,
		subscriptionRepo: params.SubscriptionRepo,
		logger:           params.Logger,
	}
}

func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPlans returns the active plan catalog.
func (srv *subscriptionService) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	plans, err := srv.subscriptionRepo.ListPlans(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscription plans")
	}

	return plans, nil
}

// GetCurrentSubscription returns the user's accessible subscription.
func (srv *subscriptionService) GetCurrentSubscription(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error) {
	sub, err := srv.subscriptionRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, domainerrors.ErrSubscriptionNotFound.WrapMessage("no active subscription")
		}

		return nil, errors.Wrap(err, "failed to find active subscription")
	}

	return sub, nil
}

// Subscribe starts a subscription to a plan, replacing any active one.
func (srv *subscriptionService) Subscribe(ctx context.Context, userID, planID uuid.UUID) (*entity.UserSubscription, error) {
	plan, err := srv.subscriptionRepo.FindPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, domainerrors.ErrPlanNotFound.WrapMessage("plan not found")
		}

		return nil, errors.Wrap(err, "failed to find plan")
	}
	if !plan.IsActive {
		return nil, domainerrors.ErrPlanNotFound.WrapMessage("plan is no longer offered")
	}

	now := time.Now()
	newSub := &entity.UserSubscription{
		UserID:             userID,
		PlanID:             plan.ID,
		Status:             entity.SubscriptionActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd(now, plan.Interval),
	}

	// Cancel-then-create in one transaction keeps at most one ACTIVE row.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		subRepo := repoFactory.SubscriptionRepo()

		existing, err := subRepo.FindActiveByUser(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return errors.Wrap(err, "failed to check existing subscription")
		}

		if existing != nil && existing.Status == entity.SubscriptionActive {
			cancelledAt := now
			existing.Status = entity.SubscriptionCancelled
			existing.CancelledAt = &cancelledAt
			if err := subRepo.UpdateSubscription(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to cancel previous subscription")
			}
		}

		if err := subRepo.CreateSubscription(ctx, newSub); err != nil {
			return errors.Wrap(err, "failed to create subscription")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute subscribe transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute subscribe transaction")
	}

	newSub.Plan = plan

	srv.log(ctx).Info("Subscription started", slog.Any("userID", userID), slog.String("plan", plan.Code))

	return newSub, nil
}

// CancelSubscription cancels at period end; access continues until the
// current period expires.
func (srv *subscriptionService) CancelSubscription(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error) {
	var cancelled *entity.UserSubscription

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		subRepo := repoFactory.SubscriptionRepo()

		sub, err := subRepo.FindActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrSubscriptionNotFound) {
				return domainerrors.ErrSubscriptionNotFound.WrapMessage("no active subscription")
			}

			return errors.Wrap(err, "failed to find subscription for cancellation")
		}

		if sub.Status != entity.SubscriptionActive {
			// Already cancelled; idempotent.
			cancelled = sub

			return nil
		}

		now := time.Now()
		sub.Status = entity.SubscriptionCancelled
		sub.CancelledAt = &now
		if err := subRepo.UpdateSubscription(ctx, sub); err != nil {
			return errors.Wrap(err, "failed to cancel subscription")
		}

		cancelled = sub

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute cancellation transaction")
	}

	srv.log(ctx).Info("Subscription cancelled", slog.Any("userID", userID))

	return cancelled, nil
}

// periodEnd computes the end of a billing period started at from.
func periodEnd(from time.Time, interval string) time.Time {
	if interval == entity.IntervalYearly {
		return from.AddDate(1, 0, 0)
	}

	return from.AddDate(0, 1, 0)
}
