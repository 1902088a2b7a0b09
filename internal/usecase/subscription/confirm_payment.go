package subscription

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/payments"
)

// ConfirmPayment handles a payment notification. The payment is looked up
// at the provider, never trusted from the notification body. Approved
// payments activate the subscription they reference; repeats are no-ops.
type ConfirmPayment struct {
	db      *gorm.DB
	gateway payments.Gateway
	audit   *audit.Dispatcher
	clock   func() time.Time
}

func NewConfirmPayment(db *gorm.DB, gateway payments.Gateway, audit *audit.Dispatcher) *ConfirmPayment {
	return &ConfirmPayment{
		db:      db,
		gateway: gateway,
		audit:   audit,
		clock:   time.Now,
	}
}

// Execute returns the subscription touched by the payment, or nil when the
// payment is not approved or references nothing we know.
func (uc *ConfirmPayment) Execute(ctx context.Context, paymentID string) (*models.ClientSubscription, error) {
	p, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != payments.StatusApproved || p.Reference == "" {
		return nil, nil
	}

	var sub models.ClientSubscription
	activated := false

	err = uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", p.Reference).
			First(&sub).Error; err != nil {
			return err
		}
		if sub.Status != models.SubscriptionPending {
			return nil
		}

		var pkg models.SubscriptionPackage
		if err := tx.
			Where("id = ? AND barbershop_id = ?", sub.PackageID, sub.BarbershopID).
			First(&pkg).Error; err != nil {
			return err
		}

		expires := uc.clock().AddDate(0, 0, pkg.ValidityDays)
		sub.Status = models.SubscriptionActive
		sub.RemainingSessions = pkg.Sessions
		sub.ExpiresAt = &expires
		sub.PaymentReference = p.ID
		activated = true

		return tx.Model(&sub).
			Select("status", "remaining_sessions", "expires_at", "payment_reference").
			Updates(&sub).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if activated {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: sub.BarbershopID,
			Action:       "package_payment_approved",
			Entity:       "client_subscription",
			EntityID:     &sub.ID,
			Metadata: map[string]string{
				"payment_id": p.ID,
			},
		})
	}

	return &sub, nil
}
