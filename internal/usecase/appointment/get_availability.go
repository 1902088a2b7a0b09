package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	clock func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		clock: time.Now,
	}
}

// Execute returns the free slots, one service long, of a barber on a day.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	shop *models.Barbershop,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}
	if !service.IsActive || service.Duration <= 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, shop.ID, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	slots := []domain.TimeSlot{}

	dayStart, dayEnd, ok := domain.WorkWindow(shop, barber, date)
	if !ok {
		return slots, nil
	}

	// Slots already started are not offered on the current day.
	now := uc.clock().In(timezone.Location(shop.Timezone))
	today := now.Format("2006-01-02")
	if in.Date < today {
		return slots, nil
	}
	earliest := dayStart
	if in.Date == today {
		earliest = now.Hour()*60 + now.Minute()
	}

	busy, err := uc.repo.ListBusyForBarber(ctx, shop.ID, barber.ID, in.Date)
	if err != nil {
		return nil, err
	}

	type interval struct{ start, end int }
	taken := make([]interval, 0, len(busy))
	for _, ap := range busy {
		s, errS := domain.ParseClock(ap.StartTime)
		e, errE := domain.ParseClock(ap.EndTime)
		if errS != nil || errE != nil {
			continue
		}
		taken = append(taken, interval{s, e})
	}

	duration := service.Duration
	idx := 0

	for cur := dayStart; cur+duration <= dayEnd; cur += duration {
		slotStart := cur
		slotEnd := cur + duration

		if slotStart < earliest {
			continue
		}

		// avança agendamentos já encerrados
		for idx < len(taken) && taken[idx].end <= slotStart {
			idx++
		}

		conflict := false
		for j := idx; j < len(taken) && taken[j].start < slotEnd; j++ {
			if slotStart < taken[j].end && slotEnd > taken[j].start {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: domain.FormatClock(slotStart),
				End:   domain.FormatClock(slotEnd),
			})
		}
	}

	return slots, nil
}
