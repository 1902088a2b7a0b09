package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/stats"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// StatsGormRepository runs the aggregate queries behind dashboards and
// reports. Date ranges are half-open: from <= date < to.
type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) SumLedger(
	ctx context.Context,
	barbershopID string,
	from string,
	to string,
	types []string,
) (decimal.Decimal, error) {

	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(
			"barbershop_id = ? AND date >= ? AND date < ? AND type IN ?",
			barbershopID, from, to, types,
		).
		Row().
		Scan(&total)
	return total, err
}

// CountAppointments counts appointments on date, optionally with status.
func (r *StatsGormRepository) CountAppointments(
	ctx context.Context,
	barbershopID string,
	date string,
	status string,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barbershop_id = ? AND date = ?", barbershopID, date)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *StatsGormRepository) CountClientsSince(
	ctx context.Context,
	barbershopID string,
	since time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("barbershop_id = ? AND created_at >= ?", barbershopID, since.UTC()).
		Count(&count).Error
	return count, err
}

type appointmentTotals struct {
	Total     int64
	Completed int64
}

func (r *StatsGormRepository) AppointmentTotals(
	ctx context.Context,
	barbershopID string,
	from string,
	to string,
) (total int64, completed int64, err error) {

	var t appointmentTotals
	err = r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select(
			"COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed",
			string(domain.StatusCompleted),
		).
		Where("barbershop_id = ? AND date >= ? AND date < ?", barbershopID, from, to).
		Scan(&t).Error
	return t.Total, t.Completed, err
}

// TopServices ranks services by completed appointments in the range.
func (r *StatsGormRepository) TopServices(
	ctx context.Context,
	barbershopID string,
	from string,
	to string,
	limit int,
) ([]stats.Ranking, error) {
	return r.rank(ctx, "services", "service_id", barbershopID, from, to, limit)
}

// TopBarbers ranks barbers by completed appointments in the range.
func (r *StatsGormRepository) TopBarbers(
	ctx context.Context,
	barbershopID string,
	from string,
	to string,
	limit int,
) ([]stats.Ranking, error) {
	return r.rank(ctx, "barbers", "barber_id", barbershopID, from, to, limit)
}

func (r *StatsGormRepository) rank(
	ctx context.Context,
	table string,
	fk string,
	barbershopID string,
	from string,
	to string,
	limit int,
) ([]stats.Ranking, error) {

	out := []stats.Ranking{}
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select(
			table+".id AS id, "+table+".name AS name, COUNT(*) AS count, COALESCE(SUM(appointments.price), 0) AS revenue",
		).
		Joins("JOIN "+table+" ON "+table+".id = appointments."+fk).
		Where(
			"appointments.barbershop_id = ? AND appointments.date >= ? AND appointments.date < ? AND appointments.status = ?",
			barbershopID, from, to, string(domain.StatusCompleted),
		).
		Group(table + ".id, " + table + ".name").
		Order("count DESC, revenue DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// DailyRevenue returns the income of every day in the range that has any.
func (r *StatsGormRepository) DailyRevenue(
	ctx context.Context,
	barbershopID string,
	from string,
	to string,
) ([]stats.DailyAmount, error) {

	out := []stats.DailyAmount{}
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("date, COALESCE(SUM(amount), 0) AS amount").
		Where(
			"barbershop_id = ? AND date >= ? AND date < ? AND type IN ?",
			barbershopID, from, to, stats.IncomeTypes,
		).
		Group("date").
		Order("date ASC").
		Scan(&out).Error
	return out, err
}

// Compile-time check
var _ stats.Repository = (*StatsGormRepository)(nil)
