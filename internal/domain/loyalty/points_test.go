package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestPointsFor(t *testing.T) {
	plan := &models.LoyaltyPlan{PointsPerCurrency: 2, IsActive: true}

	assert.Equal(t, 110, PointsFor(decimal.RequireFromString("55.00"), plan))
	assert.Equal(t, 91, PointsFor(decimal.RequireFromString("45.90"), plan))
	assert.Equal(t, 0, PointsFor(decimal.Zero, plan))
	assert.Equal(t, 0, PointsFor(decimal.NewFromInt(10), nil))

	plan.IsActive = false
	assert.Equal(t, 0, PointsFor(decimal.NewFromInt(10), plan))
}

func TestRewardsAvailable(t *testing.T) {
	plan := &models.LoyaltyPlan{RewardThreshold: 100}

	assert.Equal(t, 0, RewardsAvailable(99, plan))
	assert.Equal(t, 2, RewardsAvailable(250, plan))
	assert.Equal(t, 0, RewardsAvailable(250, &models.LoyaltyPlan{}))
}

func TestValidRewardType(t *testing.T) {
	assert.True(t, ValidRewardType("discount"))
	assert.True(t, ValidRewardType("free_service"))
	assert.False(t, ValidRewardType("cashback"))
}
