package models

import "github.com/shopspring/decimal"

type LoyaltyPlan struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index" json:"barbershop_id"`

	Name              string          `gorm:"size:100;not null" json:"name"`
	PointsPerCurrency int             `gorm:"not null" json:"points_per_currency"`
	RewardThreshold   int             `gorm:"not null" json:"reward_threshold"`
	RewardValue       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"reward_value"`
	RewardType        string          `gorm:"size:20;not null" json:"reward_type"`
	IsActive          bool            `gorm:"not null" json:"is_active"`
}
