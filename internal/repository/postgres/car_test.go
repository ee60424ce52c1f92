package postgres

import (
	"context"
	"testing"

	"rentacar-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCarRepository(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"price_per_day", "status", "available_to_withdraw", "commission_percent"}).
			AddRow("1500", "RENTED", "1000", "10")
		mock.ExpectQuery(`SELECT price_per_day, status, available_to_withdraw, commission_percent FROM cars`).
			WithArgs("owner-1").
			WillReturnRows(rows)

		car, err := repo.Get(context.Background(), "owner-1")
		require.NoError(t, err)
		assert.Equal(t, domain.Principal("owner-1"), car.Owner)
		assert.Equal(t, domain.CarStatusRented, car.Status)
		assert.Equal(t, "1500", car.PricePerDay.String())
		assert.Equal(t, "1000", car.AvailableToWithdraw.String())
		assert.Equal(t, "10", car.CommissionPercent.String())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT price_per_day, status, available_to_withdraw, commission_percent FROM cars`).
			WithArgs("owner-2").
			WillReturnRows(sqlmock.NewRows([]string{"price_per_day", "status", "available_to_withdraw", "commission_percent"}))

		_, err := repo.Get(context.Background(), "owner-2")
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_Has(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCarRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Has(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCarRepository(db)

	mock.ExpectExec(`INSERT INTO cars`).
		WithArgs("owner-1", "1500", "AVAILABLE", "0", "10").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Set(context.Background(), &domain.Car{
		Owner:               "owner-1",
		PricePerDay:         domain.NewAmount(1500),
		Status:              domain.CarStatusAvailable,
		AvailableToWithdraw: domain.NewAmount(0),
		CommissionPercent:   domain.NewAmount(10),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCarRepository(db)

	mock.ExpectExec(`DELETE FROM cars`).
		WithArgs("owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Remove(context.Background(), "owner-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCarRepository(db)

	rows := sqlmock.NewRows([]string{"owner", "price_per_day", "status", "available_to_withdraw", "commission_percent"}).
		AddRow("owner-1", "1500", "AVAILABLE", "0", "10").
		AddRow("owner-2", "2000", "RENTED", "4000", "5")
	mock.ExpectQuery(`SELECT owner, price_per_day, status, available_to_withdraw, commission_percent FROM cars`).
		WillReturnRows(rows)

	cars, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, domain.Principal("owner-2"), cars[1].Owner)
	assert.Equal(t, "4000", cars[1].AvailableToWithdraw.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
