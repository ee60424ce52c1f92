package memory

import (
	"context"
	"testing"

	"rentacar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarView(t *testing.T) {
	ctx := context.Background()
	store := New()
	cars := store.Cars()

	owner := domain.Principal("owner-1")

	exists, err := cars.Has(ctx, owner)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = cars.Get(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrCarNotFound)

	car := &domain.Car{
		Owner:               owner,
		PricePerDay:         domain.NewAmount(1500),
		Status:              domain.CarStatusAvailable,
		AvailableToWithdraw: domain.NewAmount(0),
		CommissionPercent:   domain.NewAmount(10),
	}
	require.NoError(t, cars.Set(ctx, car))

	got, err := cars.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, car, got)

	// Mutating the returned copy must not affect the stored car.
	got.Status = domain.CarStatusRented
	again, err := cars.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.CarStatusAvailable, again.Status)

	list, err := cars.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, cars.Remove(ctx, owner))
	exists, err = cars.Has(ctx, owner)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRentalView(t *testing.T) {
	ctx := context.Background()
	store := New()
	rentals := store.Rentals()

	_, err := rentals.Get(ctx, "renter-1", "owner-1")
	assert.ErrorIs(t, err, domain.ErrRentalNotFound)

	rental := &domain.Rental{
		Renter:          "renter-1",
		Owner:           "owner-1",
		TotalDaysToRent: 3,
		Amount:          domain.NewAmount(1000),
		Commission:      domain.NewAmount(100),
	}
	require.NoError(t, rentals.Set(ctx, rental))

	got, err := rentals.Get(ctx, "renter-1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, rental, got)

	// The (renter, owner) pair is the key, so a second write replaces it.
	rental.TotalDaysToRent = 7
	require.NoError(t, rentals.Set(ctx, rental))
	got, err = rentals.Get(ctx, "renter-1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got.TotalDaysToRent)
}

func TestStateView(t *testing.T) {
	ctx := context.Background()
	store := New()
	state := store.ContractState()

	hasAdmin, err := state.HasAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, hasAdmin)

	_, err = state.GetAdmin(ctx)
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)
	_, err = state.GetPaymentToken(ctx)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	require.NoError(t, state.SetAdmin(ctx, "admin"))
	require.NoError(t, state.SetPaymentToken(ctx, "usdc"))

	adm, err := state.GetAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal("admin"), adm)
	tok, err := state.GetPaymentToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal("usdc"), tok)

	// Balances default to zero and round trip.
	balance, err := state.GetContractBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, state.SetContractBalance(ctx, domain.NewAmount(1100)))
	require.NoError(t, state.SetAccumulatedCommission(ctx, domain.NewAmount(100)))

	balance, err = state.GetContractBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1100", balance.String())
	commission, err := state.GetAccumulatedCommission(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", commission.String())
}
