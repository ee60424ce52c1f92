package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Has(ctx context.Context, owner domain.Principal) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM cars WHERE owner = $1)`
	err := r.db.QueryRowContext(ctx, query, owner).Scan(&exists)
	return exists, err
}

func (r *carRepository) Get(ctx context.Context, owner domain.Principal) (*domain.Car, error) {
	car := &domain.Car{Owner: owner}
	query := `SELECT price_per_day, status, available_to_withdraw, commission_percent FROM cars WHERE owner = $1`
	err := r.db.QueryRowContext(ctx, query, owner).
		Scan(&car.PricePerDay, &car.Status, &car.AvailableToWithdraw, &car.CommissionPercent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) Set(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (owner, price_per_day, status, available_to_withdraw, commission_percent)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (owner) DO UPDATE SET
	            price_per_day = EXCLUDED.price_per_day,
	            status = EXCLUDED.status,
	            available_to_withdraw = EXCLUDED.available_to_withdraw,
	            commission_percent = EXCLUDED.commission_percent`
	_, err := r.db.ExecContext(ctx, query, car.Owner, car.PricePerDay, car.Status, car.AvailableToWithdraw, car.CommissionPercent)
	return err
}

func (r *carRepository) Remove(ctx context.Context, owner domain.Principal) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE owner = $1`, owner)
	return err
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT owner, price_per_day, status, available_to_withdraw, commission_percent FROM cars ORDER BY owner`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.Owner, &car.PricePerDay, &car.Status, &car.AvailableToWithdraw, &car.CommissionPercent); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}
