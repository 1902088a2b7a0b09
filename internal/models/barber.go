package models

import "github.com/shopspring/decimal"

type Barber struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index" json:"barbershop_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:255" json:"email"`
	PhotoURL string `gorm:"size:500" json:"photo_url"`

	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	IsActive       bool            `gorm:"not null" json:"is_active"`

	WorkStartTime string `gorm:"size:5" json:"work_start_time"`
	WorkEndTime   string `gorm:"size:5" json:"work_end_time"`
	WorkDays      string `gorm:"size:20" json:"work_days"`
}

var DefaultCommissionRate = decimal.NewFromInt(50)
