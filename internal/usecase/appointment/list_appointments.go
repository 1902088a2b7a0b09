package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type ListAppointments struct {
	repo  domain.Repository
	clock func() time.Time
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: time.Now,
	}
}

// Execute lists the barbershop's appointments, of one day when date is set.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	barbershopID string,
	date *string,
) ([]dto.AppointmentListDTO, error) {

	if date != nil {
		if _, err := domain.ParseDate(*date); err != nil {
			return nil, err
		}
	}

	apps, err := uc.repo.ListByDate(ctx, barbershopID, date)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentList(apps), nil
}

// Today lists the appointments of the current day in the barbershop's
// timezone.
func (uc *ListAppointments) Today(
	ctx context.Context,
	shop *models.Barbershop,
) ([]dto.AppointmentListDTO, error) {

	today := uc.clock().In(timezone.Location(shop.Timezone)).Format("2006-01-02")
	return uc.Execute(ctx, shop.ID, &today)
}
