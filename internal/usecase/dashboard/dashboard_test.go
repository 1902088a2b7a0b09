package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
)

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

type fixture struct {
	db      *gorm.DB
	repo    *infraRepo.StatsGormRepository
	shop    *models.Barbershop
	barber  *models.Barber
	service *models.Service
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	shop := testutil.SeedBarbershop(t, db, "teixeira")
	return &fixture{
		db:      db,
		repo:    infraRepo.NewStatsGormRepository(db),
		shop:    shop,
		barber:  testutil.SeedBarber(t, db, shop.ID, "Jean"),
		service: testutil.SeedService(t, db, shop.ID, "Corte", "55.00", 30),
	}
}

func (f *fixture) appointment(t *testing.T, shopID, date, status string) {
	testutil.SeedAppointment(t, f.db, models.Appointment{
		BarbershopID: shopID,
		BarberID:     f.barber.ID,
		ServiceID:    f.service.ID,
		Date:         date,
		StartTime:    "10:00",
		EndTime:      "10:30",
		Status:       status,
		Price:        f.service.Price,
	})
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	other := testutil.SeedBarbershop(t, f.db, "outra")

	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-10", models.TransactionService, "50.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-10", models.TransactionExpense, "20.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-02", models.TransactionProduct, "30.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-05-31", models.TransactionService, "99.00")
	testutil.SeedTransaction(t, f.db, other.ID, "2024-06-10", models.TransactionService, "500.00")

	f.appointment(t, f.shop.ID, "2024-06-10", "pending")
	f.appointment(t, f.shop.ID, "2024-06-10", "pending")
	f.appointment(t, f.shop.ID, "2024-06-10", "confirmed")
	f.appointment(t, f.shop.ID, "2024-06-11", "pending")
	f.appointment(t, other.ID, "2024-06-10", "pending")

	recent := models.Client{BarbershopID: f.shop.ID, Name: "Novo", Phone: "1"}
	recent.CreatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := models.Client{BarbershopID: f.shop.ID, Name: "Antigo", Phone: "2"}
	old.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.db.Create(&recent).Error)
	require.NoError(t, f.db.Create(&old).Error)

	uc := NewComputeDashboardStats(f.repo)
	uc.clock = fixedClock("2024-06-10T15:00:00-03:00")

	got, err := uc.Execute(context.Background(), f.shop)
	require.NoError(t, err)

	assert.Equal(t, "50.00", got.TodayRevenue.StringFixed(2))
	assert.Equal(t, "80.00", got.MonthlyRevenue.StringFixed(2))
	assert.Equal(t, int64(3), got.TodayAppointments)
	assert.Equal(t, int64(2), got.PendingAppointments)
	assert.Equal(t, int64(1), got.NewClients)
	assert.Equal(t, 75, got.OccupancyRate)
}

func TestDashboardStatsTodayFollowsTenantTimezone(t *testing.T) {
	f := newFixture(t)
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-10", models.TransactionService, "40.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-11", models.TransactionService, "10.00")

	uc := NewComputeDashboardStats(f.repo)
	// Still the 10th in Sao Paulo.
	uc.clock = fixedClock("2024-06-11T02:00:00Z")

	got, err := uc.Execute(context.Background(), f.shop)
	require.NoError(t, err)
	assert.Equal(t, "40.00", got.TodayRevenue.StringFixed(2))
}

func TestDashboardStatsEmptyTenant(t *testing.T) {
	f := newFixture(t)

	got, err := NewComputeDashboardStats(f.repo).Execute(context.Background(), f.shop)
	require.NoError(t, err)

	assert.True(t, got.TodayRevenue.IsZero())
	assert.True(t, got.MonthlyRevenue.IsZero())
	assert.Zero(t, got.TodayAppointments)
}

func TestFinanceStats(t *testing.T) {
	f := newFixture(t)
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-10", models.TransactionService, "120.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-03", models.TransactionExpense, "45.50")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-04", models.TransactionRefund, "4.50")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-07-01", models.TransactionExpense, "1000.00")

	uc := NewComputeFinanceStats(f.repo)
	uc.clock = fixedClock("2024-06-10T15:00:00-03:00")

	got, err := uc.Execute(context.Background(), f.shop)
	require.NoError(t, err)

	assert.Equal(t, "120.00", got.TodayRevenue.StringFixed(2))
	assert.Equal(t, "120.00", got.MonthlyRevenue.StringFixed(2))
	assert.Equal(t, "50.00", got.MonthlyExpenses.StringFixed(2))
	assert.Equal(t, "70.00", got.NetProfit.StringFixed(2))
	assert.True(t, got.PendingPayments.IsZero())
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		period   string
		from, to string
	}{
		{"week", "2024-06-04", "2024-06-11"},
		{"month", "2024-06-01", "2024-07-01"},
		{"", "2024-06-01", "2024-07-01"},
		{"year", "2024-01-01", "2025-01-01"},
	}
	for _, tc := range cases {
		from, to, err := PeriodRange(tc.period, now)
		require.NoError(t, err, tc.period)
		assert.Equal(t, tc.from, from, tc.period)
		assert.Equal(t, tc.to, to, tc.period)
	}

	_, _, err := PeriodRange("decade", now)
	assert.Error(t, err)
}

func TestBuildReport(t *testing.T) {
	f := newFixture(t)
	beard := testutil.SeedService(t, f.db, f.shop.ID, "Barba", "30.00", 20)

	for i := 0; i < 2; i++ {
		f.appointment(t, f.shop.ID, "2024-06-05", "completed")
	}
	testutil.SeedAppointment(t, f.db, models.Appointment{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		ServiceID:    beard.ID,
		Date:         "2024-06-06",
		StartTime:    "11:00",
		EndTime:      "11:20",
		Status:       "completed",
		Price:        beard.Price,
	})
	f.appointment(t, f.shop.ID, "2024-06-07", "cancelled")
	f.appointment(t, f.shop.ID, "2024-05-20", "completed")

	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-05", models.TransactionService, "110.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-06", models.TransactionService, "30.00")
	testutil.SeedTransaction(t, f.db, f.shop.ID, "2024-06-06", models.TransactionExpense, "15.00")

	uc := NewBuildReport(f.repo)
	uc.clock = fixedClock("2024-06-10T15:00:00-03:00")

	got, err := uc.Execute(context.Background(), f.shop, "month")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", got.From)
	assert.Equal(t, "2024-07-01", got.To)
	assert.Equal(t, "140.00", got.TotalRevenue.StringFixed(2))
	assert.Equal(t, int64(4), got.TotalAppointments)
	assert.Equal(t, int64(3), got.CompletedAppointments)
	assert.Equal(t, "46.67", got.AverageTicket.StringFixed(2))

	require.Len(t, got.TopServices, 2)
	assert.Equal(t, "Corte", got.TopServices[0].Name)
	assert.Equal(t, int64(2), got.TopServices[0].Count)
	assert.Equal(t, "110.00", got.TopServices[0].Revenue.StringFixed(2))

	require.Len(t, got.TopBarbers, 1)
	assert.Equal(t, int64(3), got.TopBarbers[0].Count)

	require.Len(t, got.DailyRevenue, 2)
	assert.Equal(t, "2024-06-05", got.DailyRevenue[0].Date)
	assert.Equal(t, "30.00", got.DailyRevenue[1].Amount.StringFixed(2))
}

func TestBuildReportRejectsUnknownPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := NewBuildReport(f.repo).Execute(context.Background(), f.shop, "decade")
	assert.Error(t, err)
}
