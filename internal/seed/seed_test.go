package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
)

const fixtureYAML = `
barbershop:
  owner_id: owner-1
  name: Barbearia Centro
  slug: centro
  phone: (11) 98888-0000
barbers:
  - name: Jean
categories:
  - name: Cabelo
services:
  - name: Corte
    category: Cabelo
    price: "55.00"
    duration: 30
clients:
  - name: Marcos
    phone: (11) 96666-1111
loyalty_plans:
  - name: Fiel
    points_per_currency: 1
    reward_threshold: 100
    reward_type: discount
`

func TestParseRejectsInvalidFixtures(t *testing.T) {
	_, err := Parse([]byte("barbershop:\n  slug: centro\n"))
	assert.Error(t, err, "owner is required")

	_, err = Parse([]byte("barbershop:\n  owner_id: o\n  slug: Not A Slug\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("barbershop:\n  owner_id: o\n  slug: centro\n  timezone: Mars/Base\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("barbershop:\n  owner_id: o\n  slug: centro\nloyalty_plans:\n  - name: x\n    reward_type: cash\n"))
	assert.Error(t, err)
}

func TestApplyCreatesTheWholeBarbershop(t *testing.T) {
	db := testutil.NewDB(t)

	f, err := Parse([]byte(fixtureYAML))
	require.NoError(t, err)

	shop, err := Apply(context.Background(), db, f)
	require.NoError(t, err)

	assert.Equal(t, "centro", shop.Slug)
	assert.Equal(t, "Barbearia Centro", shop.Name)
	assert.Equal(t, "11988880000", shop.Phone)
	assert.Equal(t, models.DefaultOpeningTime, shop.OpeningTime)

	var service models.Service
	require.NoError(t, db.Preload("Category").First(&service, "barbershop_id = ?", shop.ID).Error)
	assert.True(t, service.Price.Equal(decimal.NewFromInt(55)))
	require.NotNil(t, service.Category)
	assert.Equal(t, "Cabelo", service.Category.Name)

	var barber models.Barber
	require.NoError(t, db.First(&barber, "barbershop_id = ?", shop.ID).Error)
	assert.True(t, barber.CommissionRate.Equal(models.DefaultCommissionRate))

	var client models.Client
	require.NoError(t, db.First(&client, "barbershop_id = ?", shop.ID).Error)
	assert.Equal(t, "11966661111", client.Phone)

	var plans int64
	db.Model(&models.LoyaltyPlan{}).Where("barbershop_id = ?", shop.ID).Count(&plans)
	assert.Equal(t, int64(1), plans)
}

func TestApplyTwiceIsRejected(t *testing.T) {
	db := testutil.NewDB(t)

	f, err := Parse([]byte(fixtureYAML))
	require.NoError(t, err)

	_, err = Apply(context.Background(), db, f)
	require.NoError(t, err)

	_, err = Apply(context.Background(), db, f)
	assert.ErrorIs(t, err, ErrAlreadySeeded)
}

func TestApplyRollsBackOnUnknownCategory(t *testing.T) {
	db := testutil.NewDB(t)

	f, err := Parse([]byte(`
barbershop:
  owner_id: owner-2
  slug: norte
services:
  - name: Corte
    category: Missing
    price: "10"
    duration: 30
`))
	require.NoError(t, err)

	_, err = Apply(context.Background(), db, f)
	require.Error(t, err)

	var shops int64
	db.Model(&models.Barbershop{}).Count(&shops)
	assert.Zero(t, shops)
}
