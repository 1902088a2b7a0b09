// Package payments talks to the payment provider that sells subscription
// packages.
package payments

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

const StatusApproved = "approved"

var ErrDisabled = errors.New("payments are not configured")

type CheckoutRequest struct {
	Reference   string
	Title       string
	Description string
	Amount      decimal.Decimal
	PayerEmail  string
}

type Checkout struct {
	ID          string
	RedirectURL string
}

type Payment struct {
	ID        string
	Status    string
	Reference string
}

// Gateway creates hosted checkouts and looks payments up when the provider
// notifies us.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}

// Disabled is used when no provider credentials are configured.
type Disabled struct{}

func (Disabled) CreateCheckout(context.Context, CheckoutRequest) (*Checkout, error) {
	return nil, ErrDisabled
}

func (Disabled) GetPayment(context.Context, string) (*Payment, error) {
	return nil, ErrDisabled
}
