package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/payments"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
)

type fakeGateway struct {
	checkoutErr error
	lastReq     payments.CheckoutRequest
	payments    map[string]*payments.Payment
}

func (f *fakeGateway) CreateCheckout(_ context.Context, req payments.CheckoutRequest) (*payments.Checkout, error) {
	f.lastReq = req
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return &payments.Checkout{ID: "pref-1", RedirectURL: "https://pay.example/pref-1"}, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, id string) (*payments.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

type fixture struct {
	db     *gorm.DB
	shop   *models.Barbershop
	client *models.Client
	pkg    *models.SubscriptionPackage
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	shop := testutil.SeedBarbershop(t, db, "teixeira")
	pkg := &models.SubscriptionPackage{
		BarbershopID: shop.ID,
		Name:         "Plano Mensal",
		Price:        decimal.RequireFromString("120.00"),
		Sessions:     4,
		ValidityDays: 30,
		IsActive:     true,
	}
	require.NoError(t, db.Create(pkg).Error)

	return &fixture{
		db:     db,
		shop:   shop,
		client: testutil.SeedClient(t, db, shop.ID, "Carlos", "11999990000"),
		pkg:    pkg,
	}
}

func TestCheckoutCreatesPendingSubscription(t *testing.T) {
	f := newFixture(t)
	gw := &fakeGateway{}

	out, err := NewCheckout(f.db, gw, nil).Execute(context.Background(), CheckoutInput{
		Barbershop: f.shop,
		PackageID:  f.pkg.ID,
		ClientID:   f.client.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/pref-1", out.CheckoutURL)
	assert.Equal(t, models.SubscriptionPending, out.Subscription.Status)
	assert.Equal(t, out.Subscription.ID, gw.lastReq.Reference)
	assert.Equal(t, "120.00", gw.lastReq.Amount.StringFixed(2))

	var stored models.ClientSubscription
	require.NoError(t, f.db.First(&stored, "id = ?", out.Subscription.ID).Error)
	assert.Equal(t, "pref-1", stored.CheckoutID)
}

func TestCheckoutRejectsForeignPackage(t *testing.T) {
	f := newFixture(t)
	other := testutil.SeedBarbershop(t, f.db, "outra")

	_, err := NewCheckout(f.db, &fakeGateway{}, nil).Execute(context.Background(), CheckoutInput{
		Barbershop: other,
		PackageID:  f.pkg.ID,
		ClientID:   f.client.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "package_not_found"))
}

func TestCheckoutWithoutProvider(t *testing.T) {
	f := newFixture(t)

	_, err := NewCheckout(f.db, payments.Disabled{}, nil).Execute(context.Background(), CheckoutInput{
		Barbershop: f.shop,
		PackageID:  f.pkg.ID,
		ClientID:   f.client.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "payments_disabled"))

	var count int64
	f.db.Model(&models.ClientSubscription{}).Count(&count)
	assert.Zero(t, count)
}

func TestConfirmPaymentActivatesOnce(t *testing.T) {
	f := newFixture(t)
	gw := &fakeGateway{payments: map[string]*payments.Payment{}}

	out, err := NewCheckout(f.db, gw, nil).Execute(context.Background(), CheckoutInput{
		Barbershop: f.shop,
		PackageID:  f.pkg.ID,
		ClientID:   f.client.ID,
	})
	require.NoError(t, err)

	gw.payments["777"] = &payments.Payment{ID: "777", Status: "approved", Reference: out.Subscription.ID}

	uc := NewConfirmPayment(f.db, gw, nil)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	uc.clock = func() time.Time { return now }

	sub, err := uc.Execute(context.Background(), "777")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, 4, sub.RemainingSessions)
	assert.Equal(t, "777", sub.PaymentReference)
	require.NotNil(t, sub.ExpiresAt)
	assert.True(t, sub.ExpiresAt.Equal(now.AddDate(0, 0, 30)))

	uc.clock = func() time.Time { return now.Add(48 * time.Hour) }
	again, err := uc.Execute(context.Background(), "777")
	require.NoError(t, err)
	assert.True(t, again.ExpiresAt.Equal(now.AddDate(0, 0, 30)), "repeat notifications do not extend")
}

func TestConfirmPaymentIgnoresUnapproved(t *testing.T) {
	f := newFixture(t)
	gw := &fakeGateway{payments: map[string]*payments.Payment{
		"1": {ID: "1", Status: "pending", Reference: "x"},
		"2": {ID: "2", Status: "approved", Reference: "unknown"},
	}}
	uc := NewConfirmPayment(f.db, gw, nil)

	sub, err := uc.Execute(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, sub)

	sub, err = uc.Execute(context.Background(), "2")
	require.NoError(t, err)
	assert.Nil(t, sub)

	_, err = uc.Execute(context.Background(), "404")
	assert.Error(t, err)
}
