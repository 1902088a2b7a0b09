package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionPackage struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index" json:"barbershop_id"`

	Name         string          `gorm:"size:100;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Sessions     int             `gorm:"not null" json:"sessions"`
	ValidityDays int             `gorm:"not null" json:"validity_days"`
	IsActive     bool            `gorm:"not null" json:"is_active"`
}

const (
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// ClientSubscription is a package bought by a client. It starts pending and
// becomes active when the payment provider confirms the payment.
type ClientSubscription struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index" json:"barbershop_id"`

	ClientID  string               `gorm:"size:36;not null;index" json:"client_id"`
	PackageID string               `gorm:"size:36;not null" json:"package_id"`
	Package   *SubscriptionPackage `json:"package,omitempty"`

	Status            string     `gorm:"size:20;not null" json:"status"`
	RemainingSessions int        `gorm:"not null" json:"remaining_sessions"`
	ExpiresAt         *time.Time `json:"expires_at"`

	CheckoutID       string `gorm:"size:100" json:"checkout_id"`
	PaymentReference string `gorm:"size:100;index" json:"payment_reference"`
}
