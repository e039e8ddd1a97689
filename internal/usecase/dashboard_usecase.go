package usecase

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
)

// DashboardOutput is the single aggregate payload for the home screen.
type DashboardOutput struct {
	Streak            *entity.JournalStreak        `json:"streak"`
	JournalEntryCount int64                        `json:"journal_entry_count"`
	OrderCounts       map[entity.OrderStatus]int64 `json:"order_counts"`
	ReportsReady      int64                        `json:"reports_ready"`
	Subscription      *entity.UserSubscription     `json:"subscription,omitempty"`
	RecentEntries     []*entity.JournalEntry       `json:"recent_entries"`
	RecentOrders      []*entity.DNAKitOrder        `json:"recent_orders"`
}

// DashboardUsecase assembles the cross-module home dashboard.
type DashboardUsecase interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardOutput, error)
}
