package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

type clientHistory struct {
	Visits    int
	Spent     decimal.Decimal
	LastVisit *string
}

// RecomputeTotals rebuilds visits, spending and last visit of a client from
// the completed appointments. Loyalty points are left untouched.
func (r *ClientGormRepository) RecomputeTotals(
	ctx context.Context,
	barbershopID string,
	clientID string,
) (*models.Client, error) {

	var client models.Client

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
			First(&client).Error; err != nil {
			return err
		}

		var h clientHistory
		if err := tx.Model(&models.Appointment{}).
			Select("COUNT(*) AS visits, COALESCE(SUM(price), 0) AS spent, MAX(date) AS last_visit").
			Where(
				"barbershop_id = ? AND client_id = ? AND status = ?",
				barbershopID, clientID, string(domain.StatusCompleted),
			).
			Scan(&h).Error; err != nil {
			return err
		}

		client.TotalVisits = h.Visits
		client.TotalSpent = h.Spent
		client.LastVisit = h.LastVisit

		return tx.Model(&client).
			Select("total_visits", "total_spent", "last_visit").
			Updates(&client).Error
	})
	if err != nil {
		return nil, err
	}

	return &client, nil
}
