package usecase

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionUsecase defines the interface for subscription management use cases
type SubscriptionUsecase interface {
	// ListPlans returns the active plan catalog.
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)

	// GetCurrentSubscription returns the user's accessible subscription.
	GetCurrentSubscription(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error)

	// Subscribe starts a subscription to a plan. An existing active
	// subscription is cancelled first; at most one remains active.
	Subscribe(ctx context.Context, userID, planID uuid.UUID) (*entity.UserSubscription, error)

	// CancelSubscription cancels at period end; access continues until
	// the current period expires.
	CancelSubscription(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error)
}
