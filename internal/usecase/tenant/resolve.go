package tenant

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ResolveTenantInput struct {
	UserID    string
	FirstName string
}

// ResolveTenant maps an authenticated user to the barbershop they own,
// creating it on first access.
type ResolveTenant struct {
	repo domain.Repository
}

func NewResolveTenant(repo domain.Repository) *ResolveTenant {
	return &ResolveTenant{repo: repo}
}

func (uc *ResolveTenant) Execute(
	ctx context.Context,
	in ResolveTenantInput,
) (*models.Barbershop, error) {

	shop, err := uc.repo.FindByOwner(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if shop != nil {
		return shop, nil
	}

	// Concurrent first requests race on the owner unique index; the loser's
	// insert is a no-op and the re-select returns the winner's row. A miss
	// after the insert means the slug belonged to someone else.
	for _, slug := range domain.SlugCandidates(in.UserID) {
		candidate := domain.NewForOwner(in.UserID, in.FirstName, slug)
		if err := uc.repo.InsertIfAbsent(ctx, candidate); err != nil {
			return nil, fmt.Errorf("provision barbershop: %w", err)
		}

		shop, err := uc.repo.FindByOwner(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if shop != nil {
			return shop, nil
		}
	}

	return nil, fmt.Errorf("provision barbershop: no free slug for user %s", in.UserID)
}
