package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Get(ctx context.Context, renter, owner domain.Principal) (*domain.Rental, error) {
	rental := &domain.Rental{Renter: renter, Owner: owner}
	query := `SELECT total_days_to_rent, amount, commission FROM rentals WHERE renter = $1 AND owner = $2`
	err := r.db.QueryRowContext(ctx, query, renter, owner).
		Scan(&rental.TotalDaysToRent, &rental.Amount, &rental.Commission)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *rentalRepository) Set(ctx context.Context, rental *domain.Rental) error {
	// One slot per (renter, owner) pair: renting the same owner again
	// overwrites the previous record.
	query := `INSERT INTO rentals (renter, owner, total_days_to_rent, amount, commission)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (renter, owner) DO UPDATE SET
	            total_days_to_rent = EXCLUDED.total_days_to_rent,
	            amount = EXCLUDED.amount,
	            commission = EXCLUDED.commission`
	_, err := r.db.ExecContext(ctx, query, rental.Renter, rental.Owner, rental.TotalDaysToRent, rental.Amount, rental.Commission)
	return err
}
