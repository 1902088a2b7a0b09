package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository runs tenant-scoped aggregates. Ranges are half-open, from <= date < to.
type Repository interface {
	SumLedger(ctx context.Context, barbershopID, from, to string, types []string) (decimal.Decimal, error)
	CountAppointments(ctx context.Context, barbershopID, date, status string) (int64, error)
	CountClientsSince(ctx context.Context, barbershopID string, since time.Time) (int64, error)
	AppointmentTotals(ctx context.Context, barbershopID, from, to string) (total int64, completed int64, err error)
	TopServices(ctx context.Context, barbershopID, from, to string, limit int) ([]Ranking, error)
	TopBarbers(ctx context.Context, barbershopID, from, to string, limit int) ([]Ranking, error)
	DailyRevenue(ctx context.Context, barbershopID, from, to string) ([]DailyAmount, error)
}
