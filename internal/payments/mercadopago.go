package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const currencyBRL = "BRL"

type MercadoPago struct {
	preferences     preference.Client
	payments        payment.Client
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		preferences:     preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	amount, _ := req.Amount.Float64()

	in := preference.Request{
		ExternalReference: req.Reference,
		NotificationURL:   m.notificationURL,
		Items: []preference.ItemRequest{{
			ID:          req.Reference,
			Title:       req.Title,
			Description: req.Description,
			Quantity:    1,
			UnitPrice:   amount,
			CurrencyID:  currencyBRL,
		}},
	}
	if req.PayerEmail != "" {
		in.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	res, err := m.preferences.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &Checkout{ID: res.ID, RedirectURL: res.InitPoint}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id string) (*Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("payment id %q: %w", id, err)
	}

	res, err := m.payments.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &Payment{
		ID:        strconv.Itoa(res.ID),
		Status:    res.Status,
		Reference: res.ExternalReference,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
