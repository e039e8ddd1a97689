package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusSampleReceived, true},
		{OrderStatusSampleReceived, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusResultsGenerated, true},
		{OrderStatusProcessing, OrderStatusFailed, true},
		{OrderStatusResultsGenerated, OrderStatusCompleted, true},
		{OrderStatusResultsGenerated, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusFailed, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_ReportVisible(t *testing.T) {
	visible := []OrderStatus{OrderStatusResultsGenerated, OrderStatusCompleted}
	hidden := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusSampleReceived, OrderStatusProcessing,
		OrderStatusCancelled, OrderStatusFailed,
	}

	for _, s := range visible {
		assert.True(t, s.ReportVisible(), "expected report visible for %s", s)
	}
	for _, s := range hidden {
		assert.False(t, s.ReportVisible(), "expected report hidden for %s", s)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusFailed.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatus("NOT_A_STATUS").IsTerminal())
}
