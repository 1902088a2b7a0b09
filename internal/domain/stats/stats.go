package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// OccupancyRatePlaceholder is reported until booked-vs-available time is
// measured.
const OccupancyRatePlaceholder = 75

type DashboardStats struct {
	TodayAppointments   int64           `json:"today_appointments"`
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
	NewClients          int64           `json:"new_clients"`
	OccupancyRate       int             `json:"occupancy_rate"`
	PendingAppointments int64           `json:"pending_appointments"`
}

type FinanceStats struct {
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
}

type Ranking struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DailyAmount struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type Report struct {
	Period                string          `json:"period"`
	From                  string          `json:"from"`
	To                    string          `json:"to"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	TotalAppointments     int64           `json:"total_appointments"`
	CompletedAppointments int64           `json:"completed_appointments"`
	AverageTicket         decimal.Decimal `json:"average_ticket"`
	TopServices           []Ranking       `json:"top_services"`
	TopBarbers            []Ranking       `json:"top_barbers"`
	DailyRevenue          []DailyAmount   `json:"daily_revenue"`
}

// IncomeTypes are the ledger types counted as revenue.
var IncomeTypes = []string{models.TransactionService, models.TransactionProduct}

// OutflowTypes are the ledger types counted as expenses.
var OutflowTypes = []string{models.TransactionExpense, models.TransactionRefund}

// LedgerSummary is the in-memory counterpart of the dashboard revenue sums.
type LedgerSummary struct {
	TodayRevenue    decimal.Decimal
	MonthlyRevenue  decimal.Decimal
	MonthlyExpenses decimal.Decimal
}

// SummarizeLedger sums txs for the calendar day of now and its month, as
// read in now's location.
func SummarizeLedger(txs []models.Transaction, now time.Time) LedgerSummary {
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")
	out := LedgerSummary{
		TodayRevenue:    decimal.Zero,
		MonthlyRevenue:  decimal.Zero,
		MonthlyExpenses: decimal.Zero,
	}

	for _, tx := range txs {
		inMonth := len(tx.Date) >= 7 && tx.Date[:7] == month
		if !tx.IsIncome() {
			if inMonth {
				out.MonthlyExpenses = out.MonthlyExpenses.Add(tx.Amount)
			}
			continue
		}
		if tx.Date == today {
			out.TodayRevenue = out.TodayRevenue.Add(tx.Amount)
		}
		if inMonth {
			out.MonthlyRevenue = out.MonthlyRevenue.Add(tx.Amount)
		}
	}
	return out
}

// AverageTicket divides revenue by count, rounded to cents.
func AverageTicket(revenue decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(count)).Round(2)
}
