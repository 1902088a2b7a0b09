package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

func (r *BarbershopGormRepository) FindByOwner(
	ctx context.Context,
	ownerID string,
) (*models.Barbershop, error) {

	var shops []models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Limit(1).
		Find(&shops).Error; err != nil {
		return nil, err
	}
	if len(shops) == 0 {
		return nil, nil
	}
	return &shops[0], nil
}

func (r *BarbershopGormRepository) InsertIfAbsent(
	ctx context.Context,
	shop *models.Barbershop,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(shop).Error
}

func (r *BarbershopGormRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) Update(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*models.Barbershop, error) {

	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Barbershop{}).
			Where("id = ?", id).
			Updates(fields).Error
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("slug_already_exists")
		}
		if err != nil {
			return nil, err
		}
	}

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// Compile-time check
var _ domain.Repository = (*BarbershopGormRepository)(nil)
