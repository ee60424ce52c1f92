package domain

import "errors"

// The closed set of engine errors. Every operation surfaces exactly one of
// these on failure; validation always runs before any mutation, so a failed
// call leaves all entities untouched.
var (
	// State errors
	ErrContractInitialized    = errors.New("rentacar: contract already initialized")
	ErrContractNotInitialized = errors.New("rentacar: contract not initialized")
	ErrAdminNotFound          = errors.New("rentacar: admin not found")
	ErrTokenNotFound          = errors.New("rentacar: payment token not found")
	ErrCarNotFound            = errors.New("rentacar: car not found")
	ErrRentalNotFound         = errors.New("rentacar: rental not found")
	ErrCommissionNotSet       = errors.New("rentacar: commission not set")

	// Validation errors
	ErrAmountMustBePositive       = errors.New("rentacar: amount must be positive")
	ErrRentalDurationCannotBeZero = errors.New("rentacar: rental duration cannot be zero")
	ErrCommissionTooHigh          = errors.New("rentacar: commission must be between 0 and 100")
	ErrAdminTokenConflict         = errors.New("rentacar: admin and payment token cannot be the same principal")
	ErrSelfRentalNotAllowed       = errors.New("rentacar: owner cannot rent their own car")

	// Business-rule conflicts
	ErrCarAlreadyExist = errors.New("rentacar: car already exists for owner")
	ErrCarAlreadyRented = errors.New("rentacar: car already rented")
	ErrCarNotRented     = errors.New("rentacar: car is not rented")

	// Financial errors
	ErrInsufficientBalance                    = errors.New("rentacar: insufficient balance")
	ErrBalanceNotAvailableForAmountRequested  = errors.New("rentacar: contract balance not available for amount requested")
	ErrMathOverflow                           = errors.New("rentacar: math overflow")
)
