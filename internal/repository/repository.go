package repository

import (
	"context"

	"rentacar-backend/internal/domain"
)

// CarRepository stores at most one car per owner principal.
type CarRepository interface {
	Has(ctx context.Context, owner domain.Principal) (bool, error)
	// Get returns domain.ErrCarNotFound when no car exists for owner.
	Get(ctx context.Context, owner domain.Principal) (*domain.Car, error)
	Set(ctx context.Context, car *domain.Car) error
	Remove(ctx context.Context, owner domain.Principal) error
	// List returns every stored car. Used by the solvency audit.
	List(ctx context.Context) ([]domain.Car, error)
}

// RentalRepository stores the single rental slot per (renter, owner) pair.
// Set overwrites any existing record for the pair.
type RentalRepository interface {
	// Get returns domain.ErrRentalNotFound when no record exists.
	Get(ctx context.Context, renter, owner domain.Principal) (*domain.Rental, error)
	Set(ctx context.Context, rental *domain.Rental) error
}

// ContractStateRepository stores the singleton entities: administrator,
// payment token reference and the two custody counters. The counters
// default to zero before first write.
type ContractStateRepository interface {
	HasAdmin(ctx context.Context) (bool, error)
	// GetAdmin returns domain.ErrAdminNotFound when unset.
	GetAdmin(ctx context.Context) (domain.Principal, error)
	SetAdmin(ctx context.Context, admin domain.Principal) error

	// GetPaymentToken returns domain.ErrTokenNotFound when unset.
	GetPaymentToken(ctx context.Context) (domain.Principal, error)
	SetPaymentToken(ctx context.Context, token domain.Principal) error

	GetContractBalance(ctx context.Context) (domain.Amount, error)
	SetContractBalance(ctx context.Context, balance domain.Amount) error

	GetAccumulatedCommission(ctx context.Context) (domain.Amount, error)
	SetAccumulatedCommission(ctx context.Context, commission domain.Amount) error
}
