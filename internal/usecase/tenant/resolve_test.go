package tenant

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
)

func TestResolveTenantCreatesOnFirstAccess(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewResolveTenant(infraRepo.NewBarbershopGormRepository(db))

	shop, err := uc.Execute(context.Background(), ResolveTenantInput{
		UserID:    "4f9c2a1b-77aa-4c1e-9d0a-5b3e8f6a1c20",
		FirstName: "Jean",
	})
	require.NoError(t, err)

	assert.Equal(t, "barbershop-4f9c2a1b", shop.Slug)
	assert.Equal(t, "Jean's Barbearia", shop.Name)
	assert.Equal(t, "America/Sao_Paulo", shop.Timezone)
}

func TestResolveTenantTwiceReturnsSameRow(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewResolveTenant(infraRepo.NewBarbershopGormRepository(db))
	in := ResolveTenantInput{UserID: "user-without-shop"}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Minha Barbearia", second.Name)

	var count int64
	db.Model(&models.Barbershop{}).Where("owner_id = ?", in.UserID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveTenantConcurrentFirstAccess(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewResolveTenant(infraRepo.NewBarbershopGormRepository(db))
	in := ResolveTenantInput{UserID: "b7d1e2f3-racer", FirstName: "Ana"}

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			shop, err := uc.Execute(context.Background(), in)
			errs[i] = err
			if shop != nil {
				ids[i] = shop.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	db.Model(&models.Barbershop{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveTenantFallsBackOnSlugCollision(t *testing.T) {
	db := testutil.NewDB(t)
	repo := infraRepo.NewBarbershopGormRepository(db)
	uc := NewResolveTenant(repo)

	require.NoError(t, db.Create(&models.Barbershop{
		OwnerID: "someone-else",
		Name:    "Outra",
		Slug:    "barbershop-abcdefgh",
	}).Error)

	shop, err := uc.Execute(context.Background(), ResolveTenantInput{UserID: "abcdefgh-1234"})
	require.NoError(t, err)

	assert.Equal(t, "barbershop-abcdefgh-1234", shop.Slug)
	assert.Equal(t, "abcdefgh-1234", shop.OwnerID)
}
