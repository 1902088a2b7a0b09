package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type Repository interface {
	FindByOwner(
		ctx context.Context,
		ownerID string,
	) (*models.Barbershop, error)

	// InsertIfAbsent inserts shop and silently does nothing when a unique
	// key (owner or slug) already exists.
	InsertIfAbsent(
		ctx context.Context,
		shop *models.Barbershop,
	) error

	GetBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	Update(
		ctx context.Context,
		id string,
		fields map[string]any,
	) (*models.Barbershop, error)
}
