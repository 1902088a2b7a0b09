package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a local account. A taken email is email_already_exists.
func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("email_already_exists")
	}
	return err
}

// Upsert stores the profile asserted by the identity provider, keyed by the
// provider subject. When the email already belongs to another account the
// profile is kept without it.
func (r *UserGormRepository) Upsert(ctx context.Context, u *models.User) error {
	upsert := func(u *models.User) error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
		}).Create(u).Error
	}

	err := upsert(u)
	if httperr.IsUniqueViolation(err) && u.Email != nil {
		u.Email = nil
		err = upsert(u)
	}
	return err
}
