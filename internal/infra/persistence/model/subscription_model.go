package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlanModel mirrors the 'subscription_plans' table.
type SubscriptionPlanModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code       string    `gorm:"type:varchar(50);not null;unique"`
	Name       string    `gorm:"type:varchar(100);not null"`
	PriceCents int64     `gorm:"not null"`
	Interval   string    `gorm:"type:varchar(20);not null"`
	Features   []string  `gorm:"type:jsonb;serializer:json"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionPlanModel) TableName() string {
	return "subscription_plans"
}

// UserSubscriptionModel mirrors the 'user_subscriptions' table.
// At most one ACTIVE row per user: the subscribe transaction cancels any
// existing active row first, and the partial unique index below backstops
// it against races.
type UserSubscriptionModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index;index:idx_user_subscriptions_one_active,unique,where:status = 'ACTIVE'"`
	PlanID             uuid.UUID `gorm:"type:uuid;not null"`
	Status             string    `gorm:"type:varchar(20);not null;index"`
	CurrentPeriodStart time.Time `gorm:"not null"`
	CurrentPeriodEnd   time.Time `gorm:"not null"`
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Plan *SubscriptionPlanModel `gorm:"foreignKey:PlanID"`
}

// TableName explicitly sets the table name for GORM.
func (UserSubscriptionModel) TableName() string {
	return "user_subscriptions"
}
