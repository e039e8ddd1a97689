package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestUserSubscriptionModel_DeclaresSingleActiveIndex(t *testing.T) {
	s, err := schema.Parse(&UserSubscriptionModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var active *schema.Index
	for _, idx := range s.ParseIndexes() {
		if idx.Name == "idx_user_subscriptions_one_active" {
			active = idx
		}
	}

	require.NotNil(t, active, "partial unique index on active subscriptions must be declared")
	assert.Equal(t, "UNIQUE", active.Class)
	assert.Equal(t, "status = 'ACTIVE'", active.Where)
	require.Len(t, active.Fields, 1)
	assert.Equal(t, "UserID", active.Fields[0].Name)
}
