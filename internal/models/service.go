package models

import "github.com/shopspring/decimal"

type ServiceCategory struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index" json:"barbershop_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type Service struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index" json:"barbershop_id"`

	CategoryID *string          `gorm:"size:36" json:"category_id"`
	Category   *ServiceCategory `gorm:"constraint:OnDelete:SET NULL;" json:"category,omitempty"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int             `gorm:"not null" json:"duration"`
	IsCombo     bool            `gorm:"not null" json:"is_combo"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
}
