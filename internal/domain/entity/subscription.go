// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the billing state of a member subscription.
type SubscriptionStatus string

const (
	// SubscriptionActive grants access to premium features.
	SubscriptionActive SubscriptionStatus = "ACTIVE"
	// SubscriptionCancelled keeps access until the current period ends.
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	// SubscriptionExpired grants no access.
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// Billing intervals for subscription plans.
const (
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// SubscriptionPlan is a purchasable subscription tier.
type SubscriptionPlan struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"` // Stable identifier, e.g. "premium_monthly".
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Interval   string    `json:"interval"` // monthly or yearly.
	Features   []string  `json:"features"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserSubscription is a member's subscription record.
type UserSubscription struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	PlanID             uuid.UUID          `json:"plan_id"`
	Plan               *SubscriptionPlan  `json:"plan,omitempty"`
	Status             SubscriptionStatus `json:"status"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// AccessibleAt reports whether the subscription grants access at the given time.
func (s *UserSubscription) AccessibleAt(now time.Time) bool {
	switch s.Status {
	case SubscriptionActive:
		return true
	case SubscriptionCancelled:
		return now.Before(s.CurrentPeriodEnd)
	default:
		return false
	}
}
