// Package testutil opens throwaway SQLite databases and seeds them for
// repository, usecase and handler tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// NewDB returns a migrated in-memory database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every goroutine on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func SeedBarbershop(t testing.TB, db *gorm.DB, slug string) *models.Barbershop {
	t.Helper()

	shop := &models.Barbershop{
		OwnerID:     "owner-" + slug,
		Name:        "Barbearia " + slug,
		Slug:        slug,
		OpeningTime: models.DefaultOpeningTime,
		ClosingTime: models.DefaultClosingTime,
		WorkDays:    models.DefaultWorkDays,
		Timezone:    "America/Sao_Paulo",
	}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

func SeedBarber(t testing.TB, db *gorm.DB, shopID, name string) *models.Barber {
	t.Helper()

	barber := &models.Barber{
		BarbershopID:   shopID,
		Name:           name,
		CommissionRate: models.DefaultCommissionRate,
		IsActive:       true,
		WorkStartTime:  "09:00",
		WorkEndTime:    "19:00",
		WorkDays:       "0,1,2,3,4,5,6",
	}
	require.NoError(t, db.Create(barber).Error)
	return barber
}

func SeedService(t testing.TB, db *gorm.DB, shopID, name, price string, duration int) *models.Service {
	t.Helper()

	service := &models.Service{
		BarbershopID: shopID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Duration:     duration,
		IsActive:     true,
	}
	require.NoError(t, db.Create(service).Error)
	return service
}

func SeedClient(t testing.TB, db *gorm.DB, shopID, name, phone string) *models.Client {
	t.Helper()

	client := &models.Client{
		BarbershopID: shopID,
		Name:         name,
		Phone:        phone,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func SeedAppointment(t testing.TB, db *gorm.DB, ap models.Appointment) *models.Appointment {
	t.Helper()

	if ap.Status == "" {
		ap.Status = "pending"
	}
	require.NoError(t, db.Omit("Barber", "Service", "Client").Create(&ap).Error)
	return &ap
}

func SeedTransaction(t testing.TB, db *gorm.DB, shopID, date, kind, amount string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		BarbershopID:  shopID,
		Type:          kind,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: "pix",
		Date:          date,
	}
	require.NoError(t, db.Create(tx).Error)
	return tx
}
