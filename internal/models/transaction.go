package models

import "github.com/shopspring/decimal"

const (
	TransactionService = "service"
	TransactionProduct = "product"
	TransactionExpense = "expense"
	TransactionRefund  = "refund"
)

// Transaction is an append-only ledger entry.
type Transaction struct {
	Base
	BarbershopID string `gorm:"size:36;not null;index:idx_transactions_shop_date,priority:1" json:"barbershop_id"`

	AppointmentID *string `gorm:"size:36" json:"appointment_id"`
	BarberID      *string `gorm:"size:36;index" json:"barber_id"`
	ClientID      *string `gorm:"size:36" json:"client_id"`

	Type             string          `gorm:"size:20;not null" json:"type"`
	Category         string          `gorm:"size:50" json:"category"`
	Description      string          `gorm:"size:255" json:"description"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod    string          `gorm:"size:20" json:"payment_method"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"commission_amount"`
	Date             string          `gorm:"size:10;not null;index:idx_transactions_shop_date,priority:2" json:"date"`
}

// IsIncome reports whether the entry counts towards revenue.
func (t Transaction) IsIncome() bool {
	return t.Type != TransactionExpense && t.Type != TransactionRefund
}
