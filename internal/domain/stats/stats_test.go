package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var june10 = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func tx(date, kind, amount string) models.Transaction {
	return models.Transaction{Date: date, Type: kind, Amount: decimal.RequireFromString(amount)}
}

func TestSummarizeLedgerExcludesExpenses(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-06-10", models.TransactionService, "50"),
		tx("2024-06-10", models.TransactionExpense, "20"),
	}

	got := SummarizeLedger(txs, june10)

	assert.True(t, got.TodayRevenue.Equal(decimal.NewFromInt(50)), got.TodayRevenue.String())
	assert.True(t, got.MonthlyRevenue.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.MonthlyExpenses.Equal(decimal.NewFromInt(20)))
}

func TestSummarizeLedgerMonthBoundaries(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-06-01", models.TransactionProduct, "10.50"),
		tx("2024-06-09", models.TransactionService, "40"),
		tx("2024-05-31", models.TransactionService, "999"),
		tx("2024-07-01", models.TransactionService, "999"),
		tx("2024-06-10", models.TransactionRefund, "5"),
	}

	got := SummarizeLedger(txs, june10)

	assert.True(t, got.TodayRevenue.IsZero())
	assert.Equal(t, "50.5", got.MonthlyRevenue.String())
	assert.Equal(t, "5", got.MonthlyExpenses.String())
}

func TestSummarizeLedgerUsesLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	txs := []models.Transaction{
		tx("2024-06-30", models.TransactionService, "80"),
		tx("2024-07-01", models.TransactionService, "999"),
	}

	// 2024-07-01 01:30 UTC is still the evening of June 30 in São Paulo.
	got := SummarizeLedger(txs, time.Date(2024, 7, 1, 1, 30, 0, 0, time.UTC).In(loc))

	assert.Equal(t, "80", got.TodayRevenue.String())
	assert.Equal(t, "80", got.MonthlyRevenue.String())
}

func TestSummarizeLedgerZeroTime(t *testing.T) {
	got := SummarizeLedger([]models.Transaction{tx("2024-06-10", models.TransactionService, "10")}, time.Time{})
	assert.True(t, got.TodayRevenue.IsZero())
	assert.True(t, got.MonthlyRevenue.IsZero())
}

func TestAverageTicket(t *testing.T) {
	assert.Equal(t, "33.33", AverageTicket(decimal.NewFromInt(100), 3).String())
	assert.True(t, AverageTicket(decimal.NewFromInt(100), 0).IsZero())
}
