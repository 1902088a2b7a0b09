package models

import "github.com/shopspring/decimal"

// Client is a customer record of one barbershop. TotalVisits, TotalSpent,
// LastVisit and LoyaltyPoints are running totals of completed appointments.
type Client struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index:idx_clients_shop_phone,priority:1" json:"barbershop_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20;index:idx_clients_shop_phone,priority:2" json:"phone"`
	Email     string `gorm:"size:255" json:"email"`
	BirthDate string `gorm:"size:10" json:"birth_date"`
	Notes     string `gorm:"type:text" json:"notes"`

	LoyaltyPoints int             `gorm:"not null;default:0" json:"loyalty_points"`
	TotalVisits   int             `gorm:"not null;default:0" json:"total_visits"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_spent"`
	LastVisit     *string         `gorm:"size:10" json:"last_visit"`
}
