package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const (
	RewardDiscount    = "discount"
	RewardFreeService = "free_service"
)

// PointsFor returns the points earned by spending amount under plan,
// rounded down. Inactive plans earn nothing.
func PointsFor(amount decimal.Decimal, plan *models.LoyaltyPlan) int {
	if plan == nil || !plan.IsActive || plan.PointsPerCurrency <= 0 || !amount.IsPositive() {
		return 0
	}
	return int(amount.Mul(decimal.NewFromInt(int64(plan.PointsPerCurrency))).Floor().IntPart())
}

// RewardsAvailable is how many times the client can redeem the plan's
// reward with the given balance.
func RewardsAvailable(points int, plan *models.LoyaltyPlan) int {
	if plan == nil || plan.RewardThreshold <= 0 || points <= 0 {
		return 0
	}
	return points / plan.RewardThreshold
}

func ValidRewardType(t string) bool {
	return t == RewardDiscount || t == RewardFreeService
}
