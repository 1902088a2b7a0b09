package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
		clock: time.Now,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	shop *models.Barbershop,
	userID string,
	appointmentID string,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var from domain.Status
	guard := func(current domain.Status) error {
		from = current
		return domain.CanTransition(current, to)
	}

	now := uc.clock().In(timezone.Location(shop.Timezone))

	ap, err := uc.repo.UpdateStatus(ctx, shop.ID, appointmentID, to, now, guard)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(userID),
		Action:       "appointment_status_changed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"from": string(from),
			"to":   string(to),
		},
	})

	return ap, nil
}
