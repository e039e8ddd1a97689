// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for subscription persistence.
var (
	// ErrPlanNotFound is returned when a subscription plan is not found.
	ErrPlanNotFound = errors.New("subscription plan not found")
	// ErrSubscriptionNotFound is returned when no subscription matches.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// SubscriptionRepository defines persistence operations for plans and member subscriptions.
type SubscriptionRepository interface {
	// ListPlans returns all active plans, cheapest first.
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)

	// FindPlanByID retrieves a single plan.
	FindPlanByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error)

	// FindActiveByUser retrieves the user's currently accessible subscription
	// (ACTIVE, or CANCELLED inside its paid period), with the plan preloaded.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.UserSubscription, error)

	// CreateSubscription persists a new subscription.
	CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error

	// UpdateSubscription persists status mutations on a subscription.
	UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error
}
