// Package memory provides an in-memory implementation of the repository
// interfaces, used by tests and by db-less single-node deployments.
package memory

import (
	"context"
	"sync"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type rentalKey struct {
	renter domain.Principal
	owner  domain.Principal
}

// Store holds all entities behind a single RWMutex. The repository views
// returned by Cars, Rentals and ContractState share the same data.
type Store struct {
	mu sync.RWMutex

	cars    map[domain.Principal]domain.Car
	rentals map[rentalKey]domain.Rental

	admin        *domain.Principal
	paymentToken *domain.Principal

	contractBalance       domain.Amount
	accumulatedCommission domain.Amount
}

func New() *Store {
	return &Store{
		cars:                  make(map[domain.Principal]domain.Car),
		rentals:               make(map[rentalKey]domain.Rental),
		contractBalance:       domain.NewAmount(0),
		accumulatedCommission: domain.NewAmount(0),
	}
}

func (s *Store) Cars() repository.CarRepository { return carView{s} }

func (s *Store) Rentals() repository.RentalRepository { return rentalView{s} }

func (s *Store) ContractState() repository.ContractStateRepository { return stateView{s} }

type carView struct{ s *Store }

func (v carView) Has(_ context.Context, owner domain.Principal) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	_, ok := v.s.cars[owner]
	return ok, nil
}

func (v carView) Get(_ context.Context, owner domain.Principal) (*domain.Car, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	car, ok := v.s.cars[owner]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	return &car, nil
}

func (v carView) Set(_ context.Context, car *domain.Car) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.cars[car.Owner] = *car
	return nil
}

func (v carView) Remove(_ context.Context, owner domain.Principal) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	delete(v.s.cars, owner)
	return nil
}

func (v carView) List(_ context.Context) ([]domain.Car, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	cars := make([]domain.Car, 0, len(v.s.cars))
	for _, car := range v.s.cars {
		cars = append(cars, car)
	}
	return cars, nil
}

type rentalView struct{ s *Store }

func (v rentalView) Get(_ context.Context, renter, owner domain.Principal) (*domain.Rental, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	rental, ok := v.s.rentals[rentalKey{renter: renter, owner: owner}]
	if !ok {
		return nil, domain.ErrRentalNotFound
	}
	return &rental, nil
}

func (v rentalView) Set(_ context.Context, rental *domain.Rental) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.rentals[rentalKey{renter: rental.Renter, owner: rental.Owner}] = *rental
	return nil
}

type stateView struct{ s *Store }

func (v stateView) HasAdmin(_ context.Context) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.admin != nil, nil
}

func (v stateView) GetAdmin(_ context.Context) (domain.Principal, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if v.s.admin == nil {
		return "", domain.ErrAdminNotFound
	}
	return *v.s.admin, nil
}

func (v stateView) SetAdmin(_ context.Context, admin domain.Principal) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.admin = &admin
	return nil
}

func (v stateView) GetPaymentToken(_ context.Context) (domain.Principal, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if v.s.paymentToken == nil {
		return "", domain.ErrTokenNotFound
	}
	return *v.s.paymentToken, nil
}

func (v stateView) SetPaymentToken(_ context.Context, token domain.Principal) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.paymentToken = &token
	return nil
}

func (v stateView) GetContractBalance(_ context.Context) (domain.Amount, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.contractBalance, nil
}

func (v stateView) SetContractBalance(_ context.Context, balance domain.Amount) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.contractBalance = balance
	return nil
}

func (v stateView) GetAccumulatedCommission(_ context.Context) (domain.Amount, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.accumulatedCommission, nil
}

func (v stateView) SetAccumulatedCommission(_ context.Context, commission domain.Amount) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.accumulatedCommission = commission
	return nil
}
