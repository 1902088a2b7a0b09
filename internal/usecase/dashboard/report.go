package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/stats"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"

	rankingLimit = 5
)

// PeriodRange returns the half-open date range of period ending on now.
// A week is the trailing seven days, month and year are calendar ones.
func PeriodRange(period string, now time.Time) (from, to string, err error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodWeek:
		return day.AddDate(0, 0, -6).Format(dateLayout), day.AddDate(0, 0, 1).Format(dateLayout), nil
	case PeriodMonth, "":
		first, next := timezone.MonthRange(now)
		return first, next, nil
	case PeriodYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return first.Format(dateLayout), first.AddDate(1, 0, 0).Format(dateLayout), nil
	}
	return "", "", httperr.ErrBusiness("invalid_period")
}

type BuildReport struct {
	repo  stats.Repository
	clock func() time.Time
}

func NewBuildReport(repo stats.Repository) *BuildReport {
	return &BuildReport{
		repo:  repo,
		clock: time.Now,
	}
}

func (uc *BuildReport) Execute(
	ctx context.Context,
	shop *models.Barbershop,
	period string,
) (*stats.Report, error) {

	now := uc.clock().In(timezone.Location(shop.Timezone))
	from, to, err := PeriodRange(period, now)
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = PeriodMonth
	}

	out := &stats.Report{Period: period, From: from, To: to}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.TotalRevenue, err = uc.repo.SumLedger(gctx, shop.ID, from, to, stats.IncomeTypes)
		return err
	})
	g.Go(func() error {
		var err error
		out.TotalAppointments, out.CompletedAppointments, err = uc.repo.AppointmentTotals(gctx, shop.ID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		out.TopServices, err = uc.repo.TopServices(gctx, shop.ID, from, to, rankingLimit)
		return err
	})
	g.Go(func() error {
		var err error
		out.TopBarbers, err = uc.repo.TopBarbers(gctx, shop.ID, from, to, rankingLimit)
		return err
	})
	g.Go(func() error {
		var err error
		out.DailyRevenue, err = uc.repo.DailyRevenue(gctx, shop.ID, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.AverageTicket = stats.AverageTicket(out.TotalRevenue, out.CompletedAppointments)
	return out, nil
}
