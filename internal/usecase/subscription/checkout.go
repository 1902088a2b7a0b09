package subscription

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/payments"
)

type CheckoutInput struct {
	Barbershop *models.Barbershop
	UserID     string
	PackageID  string
	ClientID   string
}

type CheckoutOutput struct {
	Subscription *models.ClientSubscription `json:"subscription"`
	CheckoutURL  string                     `json:"checkout_url"`
}

// Checkout sells a package to a client: a pending subscription is stored
// and a hosted checkout is opened with the subscription id as reference.
type Checkout struct {
	db      *gorm.DB
	gateway payments.Gateway
	audit   *audit.Dispatcher
}

func NewCheckout(db *gorm.DB, gateway payments.Gateway, audit *audit.Dispatcher) *Checkout {
	return &Checkout{db: db, gateway: gateway, audit: audit}
}

func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (*CheckoutOutput, error) {
	shop := in.Barbershop
	db := uc.db.WithContext(ctx)

	// --------------------------------------------------
	// 1. Pacote e cliente da barbearia
	// --------------------------------------------------
	var pkg models.SubscriptionPackage
	if err := db.
		Where("id = ? AND barbershop_id = ?", in.PackageID, shop.ID).
		First(&pkg).Error; err != nil {
		return nil, notFoundAs(err, "package_not_found")
	}
	if !pkg.IsActive {
		return nil, httperr.ErrBusiness("package_not_found")
	}

	var client models.Client
	if err := db.
		Where("id = ? AND barbershop_id = ?", in.ClientID, shop.ID).
		First(&client).Error; err != nil {
		return nil, notFoundAs(err, "client_not_found")
	}

	// --------------------------------------------------
	// 2. Assinatura pendente
	// --------------------------------------------------
	sub := &models.ClientSubscription{
		BarbershopID:      shop.ID,
		ClientID:          client.ID,
		PackageID:         pkg.ID,
		Status:            models.SubscriptionPending,
		RemainingSessions: pkg.Sessions,
	}
	if err := db.Omit("Package").Create(sub).Error; err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Checkout no provedor
	// --------------------------------------------------
	checkout, err := uc.gateway.CreateCheckout(ctx, payments.CheckoutRequest{
		Reference:   sub.ID,
		Title:       pkg.Name,
		Description: fmt.Sprintf("%s - %s", shop.Name, pkg.Name),
		Amount:      pkg.Price,
		PayerEmail:  client.Email,
	})
	if err != nil {
		_ = db.Delete(sub).Error
		if errors.Is(err, payments.ErrDisabled) {
			return nil, httperr.ErrBusiness("payments_disabled")
		}
		return nil, err
	}

	sub.CheckoutID = checkout.ID
	if err := db.Model(sub).Update("checkout_id", checkout.ID).Error; err != nil {
		return nil, err
	}
	sub.Package = &pkg

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(in.UserID),
		Action:       "package_checkout_created",
		Entity:       "client_subscription",
		EntityID:     &sub.ID,
		Metadata: map[string]string{
			"package_id": pkg.ID,
			"client_id":  client.ID,
		},
	})

	return &CheckoutOutput{Subscription: sub, CheckoutURL: checkout.RedirectURL}, nil
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
