package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/stats"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const (
	dateLayout       = "2006-01-02"
	newClientsWindow = 30 * 24 * time.Hour
)

type ComputeDashboardStats struct {
	repo  stats.Repository
	clock func() time.Time
}

func NewComputeDashboardStats(repo stats.Repository) *ComputeDashboardStats {
	return &ComputeDashboardStats{
		repo:  repo,
		clock: time.Now,
	}
}

func (uc *ComputeDashboardStats) Execute(
	ctx context.Context,
	shop *models.Barbershop,
) (*stats.DashboardStats, error) {

	now := uc.clock().In(timezone.Location(shop.Timezone))
	today := now.Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)
	monthFrom, monthTo := timezone.MonthRange(now)

	out := &stats.DashboardStats{OccupancyRate: stats.OccupancyRatePlaceholder}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.TodayAppointments, err = uc.repo.CountAppointments(gctx, shop.ID, today, "")
		return err
	})
	g.Go(func() error {
		var err error
		out.PendingAppointments, err = uc.repo.CountAppointments(
			gctx, shop.ID, today, string(appointment.StatusPending),
		)
		return err
	})
	g.Go(func() error {
		var err error
		out.TodayRevenue, err = uc.repo.SumLedger(gctx, shop.ID, today, tomorrow, stats.IncomeTypes)
		return err
	})
	g.Go(func() error {
		var err error
		out.MonthlyRevenue, err = uc.repo.SumLedger(gctx, shop.ID, monthFrom, monthTo, stats.IncomeTypes)
		return err
	})
	g.Go(func() error {
		var err error
		out.NewClients, err = uc.repo.CountClientsSince(gctx, shop.ID, now.Add(-newClientsWindow))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
