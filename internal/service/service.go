package service

import (
	"context"

	"rentacar-backend/internal/domain"
)

// RentalLedgerService is the accounting and state-transition engine: car
// lifecycle, rental escrow, commission computation and balance bookkeeping.
// Every operation authenticates the relevant principal, validates input,
// performs checked arithmetic, moves funds when needed and commits all
// entity writes together; the first failing check aborts with one of the
// domain errors and leaves all entities untouched.
type RentalLedgerService interface {
	// Initialize sets the administrator and payment token exactly once.
	Initialize(ctx context.Context, admin, paymentToken domain.Principal) error

	// AddCar lists a car for owner. Administrator only.
	AddCar(ctx context.Context, owner domain.Principal, pricePerDay, commissionPercent domain.Amount) error

	// GetCarStatus reports availability. No authorization required.
	GetCarStatus(ctx context.Context, owner domain.Principal) (domain.CarStatus, error)

	// Rental charges the renter the rent plus commission into custody and
	// marks the car rented.
	Rental(ctx context.Context, renter, owner domain.Principal, totalDaysToRent uint32, amount domain.Amount) error

	// RemoveCar deletes the listing regardless of status. Administrator only.
	RemoveCar(ctx context.Context, owner domain.Principal) error

	// PayoutOwner pays accrued earnings out of custody to the owner.
	PayoutOwner(ctx context.Context, owner domain.Principal, amount domain.Amount) error

	// ReturnCar flips a rented car back to available.
	ReturnCar(ctx context.Context, owner domain.Principal) error

	// GetAdminBalance reports accumulated commission. Administrator only.
	GetAdminBalance(ctx context.Context) (domain.Amount, error)

	// PayoutAdmin pays commission out of custody to the administrator.
	PayoutAdmin(ctx context.Context, amount domain.Amount) error
}
