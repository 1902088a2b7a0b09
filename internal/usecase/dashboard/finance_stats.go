package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/stats"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type ComputeFinanceStats struct {
	repo  stats.Repository
	clock func() time.Time
}

func NewComputeFinanceStats(repo stats.Repository) *ComputeFinanceStats {
	return &ComputeFinanceStats{
		repo:  repo,
		clock: time.Now,
	}
}

func (uc *ComputeFinanceStats) Execute(
	ctx context.Context,
	shop *models.Barbershop,
) (*stats.FinanceStats, error) {

	now := uc.clock().In(timezone.Location(shop.Timezone))
	today := now.Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)
	monthFrom, monthTo := timezone.MonthRange(now)

	out := &stats.FinanceStats{PendingPayments: decimal.Zero}

	g, gctx := errgroup.WithContext(ctx)

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
		out.MonthlyExpenses, err = uc.repo.SumLedger(gctx, shop.ID, monthFrom, monthTo, stats.OutflowTypes)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.NetProfit = out.MonthlyRevenue.Sub(out.MonthlyExpenses)
	return out, nil
}
