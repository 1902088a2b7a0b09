package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index:idx_appointments_shop_date,priority:1" json:"barbershop_id"`

	ClientID *string `gorm:"size:36;index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnDelete:SET NULL;" json:"client,omitempty"`

	BarberID string  `gorm:"size:36;not null;index" json:"barber_id"`
	Barber   *Barber `json:"barber,omitempty"`

	ServiceID string   `gorm:"size:36;not null" json:"service_id"`
	Service   *Service `json:"service,omitempty"`

	Date      string `gorm:"size:10;not null;index:idx_appointments_shop_date,priority:2" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Status string          `gorm:"size:20;not null" json:"status"`
	Price  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes  string          `gorm:"type:text" json:"notes"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	NoShowAt    *time.Time `json:"no_show_at"`
}
