package service

import (
	"context"
	"sync"

	"rentacar-backend/internal/asset"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/events"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/security"
	"rentacar-backend/internal/utils"
)

var oneHundred = domain.NewAmount(100)

type rentalLedgerService struct {
	// mu serializes mutating operations: rental, payouts, remove and
	// return all read-modify-write the same car row and the shared
	// custody counters.
	mu sync.Mutex

	cars     repository.CarRepository
	rentals  repository.RentalRepository
	state    repository.ContractStateRepository
	transfer asset.TransferService
	auth     security.Authorizer
	events   events.Publisher

	// custody is the principal holding escrowed funds, the counterpart of
	// every renter payment and payout.
	custody domain.Principal
}

func NewRentalLedgerService(
	cars repository.CarRepository,
	rentals repository.RentalRepository,
	state repository.ContractStateRepository,
	transfer asset.TransferService,
	auth security.Authorizer,
	publisher events.Publisher,
	custody domain.Principal,
) RentalLedgerService {
	return &rentalLedgerService{
		cars:     cars,
		rentals:  rentals,
		state:    state,
		transfer: transfer,
		auth:     auth,
		events:   publisher,
		custody:  custody,
	}
}

func (s *rentalLedgerService) Initialize(ctx context.Context, admin, paymentToken domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin == paymentToken {
		return domain.ErrAdminTokenConflict
	}

	initialized, err := s.state.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return domain.ErrContractInitialized
	}

	if err := s.state.SetAdmin(ctx, admin); err != nil {
		return err
	}
	if err := s.state.SetPaymentToken(ctx, paymentToken); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(
		[]string{events.TopicContractInitialized},
		map[string]any{"admin": admin, "payment_token": paymentToken},
	))
	return nil
}

func (s *rentalLedgerService) AddCar(ctx context.Context, owner domain.Principal, pricePerDay, commissionPercent domain.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, err := s.state.GetAdmin(ctx)
	if err != nil {
		return err
	}
	if err := s.auth.Require(ctx, admin); err != nil {
		return err
	}

	if !pricePerDay.IsPositive() {
		return domain.ErrAmountMustBePositive
	}

	exists, err := s.cars.Has(ctx, owner)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrCarAlreadyExist
	}

	if commissionPercent.Sign() < 0 || commissionPercent.GreaterThan(oneHundred) {
		return domain.ErrCommissionTooHigh
	}

	car := &domain.Car{
		Owner:               owner,
		PricePerDay:         pricePerDay,
		Status:              domain.CarStatusAvailable,
		AvailableToWithdraw: domain.NewAmount(0),
		CommissionPercent:   commissionPercent,
	}
	if err := s.cars.Set(ctx, car); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(
		[]string{events.TopicCarAdded, string(owner)},
		map[string]any{"price_per_day": pricePerDay.String()},
	))
	return nil
}

func (s *rentalLedgerService) GetCarStatus(ctx context.Context, owner domain.Principal) (domain.CarStatus, error) {
	car, err := s.cars.Get(ctx, owner)
	if err != nil {
		return "", err
	}
	return car.Status, nil
}

func (s *rentalLedgerService) Rental(ctx context.Context, renter, owner domain.Principal, totalDaysToRent uint32, amount domain.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.auth.Require(ctx, renter); err != nil {
		return err
	}

	if !amount.IsPositive() {
		return domain.ErrAmountMustBePositive
	}
	if totalDaysToRent == 0 {
		return domain.ErrRentalDurationCannotBeZero
	}
	if renter == owner {
		return domain.ErrSelfRentalNotAllowed
	}

	car, err := s.cars.Get(ctx, owner)
	if err != nil {
		return err
	}
	if car.Status != domain.CarStatusAvailable {
		return domain.ErrCarAlreadyRented
	}

	commission, err := utils.CommissionFor(car.CommissionPercent, amount)
	if err != nil {
		return err
	}
	totalToPay, err := utils.TotalToPay(amount, commission)
	if err != nil {
		return err
	}

	// All checked arithmetic happens before the transfer and the writes,
	// so an overflow anywhere aborts with no side effects.
	accumulated, err := s.state.GetAccumulatedCommission(ctx)
	if err != nil {
		return err
	}
	newAccumulated, err := accumulated.Add(commission)
	if err != nil {
		return err
	}

	newAvailable, err := car.AvailableToWithdraw.Add(amount)
	if err != nil {
		return err
	}

	balance, err := s.state.GetContractBalance(ctx)
	if err != nil {
		return err
	}
	newBalance, err := balance.Add(totalToPay)
	if err != nil {
		return err
	}

	// The renter pays rent plus commission into custody; the custody
	// balance backs both the owner's future payout and the admin's cut.
	if err := s.transfer.Transfer(ctx, renter, s.custody, totalToPay); err != nil {
		return err
	}

	car.Status = domain.CarStatusRented
	car.AvailableToWithdraw = newAvailable
	if err := s.cars.Set(ctx, car); err != nil {
		return err
	}
	if commission.IsPositive() {
		if err := s.state.SetAccumulatedCommission(ctx, newAccumulated); err != nil {
			return err
		}
	}
	if err := s.state.SetContractBalance(ctx, newBalance); err != nil {
		return err
	}

	rental := &domain.Rental{
		Renter:          renter,
		Owner:           owner,
		TotalDaysToRent: totalDaysToRent,
		Amount:          amount,
		Commission:      commission,
	}
	if err := s.rentals.Set(ctx, rental); err != nil {
		return err
	}

	// The event carries the base rent only, not the commission.
	s.events.Publish(ctx, events.New(
		[]string{events.TopicRented, string(renter), string(owner)},
		map[string]any{"total_days": totalDaysToRent, "amount": amount.String()},
	))
	return nil
}

func (s *rentalLedgerService) RemoveCar(ctx context.Context, owner domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, err := s.state.GetAdmin(ctx)
	if err != nil {
		return err
	}
	if err := s.auth.Require(ctx, admin); err != nil {
		return err
	}

	exists, err := s.cars.Has(ctx, owner)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrCarNotFound
	}

	// Status is deliberately not checked: a rented car can be removed and
	// its rental record outlives it.
	if err := s.cars.Remove(ctx, owner); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(
		[]string{events.TopicCarRemoved, string(owner)},
		map[string]any{},
	))
	return nil
}

func (s *rentalLedgerService) PayoutOwner(ctx context.Context, owner domain.Principal, amount domain.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.auth.Require(ctx, owner); err != nil {
		return err
	}

	if !amount.IsPositive() {
		return domain.ErrAmountMustBePositive
	}

	car, err := s.cars.Get(ctx, owner)
	if err != nil {
		return err
	}
	if amount.GreaterThan(car.AvailableToWithdraw) {
		return domain.ErrInsufficientBalance
	}

	balance, err := s.state.GetContractBalance(ctx)
	if err != nil {
		return err
	}
	if amount.GreaterThan(balance) {
		return domain.ErrBalanceNotAvailableForAmountRequested
	}

	// Unreachable given the bound checks above, but the subtraction stays
	// checked regardless.
	newAvailable, err := car.AvailableToWithdraw.Sub(amount)
	if err != nil {
		return err
	}
	newBalance, err := balance.Sub(amount)
	if err != nil {
		return err
	}

	if err := s.transfer.Transfer(ctx, s.custody, owner, amount); err != nil {
		return err
	}

	car.AvailableToWithdraw = newAvailable
	if err := s.cars.Set(ctx, car); err != nil {
		return err
	}
	if err := s.state.SetContractBalance(ctx, newBalance); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(
		[]string{events.TopicPayoutOwner, string(owner)},
		map[string]any{"amount": amount.String()},
	))
	return nil
}

func (s *rentalLedgerService) ReturnCar(ctx context.Context, owner domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.auth.Require(ctx, owner); err != nil {
		return err
	}

	car, err := s.cars.Get(ctx, owner)
	if err != nil {
		return err
	}
	if car.Status != domain.CarStatusRented {
		return domain.ErrCarNotRented
	}

	// Only availability flips; rental records and balances are untouched.
	car.Status = domain.CarStatusAvailable
	if err := s.cars.Set(ctx, car); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(
		[]string{events.TopicCarReturned, string(owner)},
		map[string]any{},
	))
	return nil
}

func (s *rentalLedgerService) GetAdminBalance(ctx context.Context) (domain.Amount, error) {
	admin, err := s.state.GetAdmin(ctx)
	if err != nil {
		return domain.Amount{}, err
	}
	if err := s.auth.Require(ctx, admin); err != nil {
		return domain.Amount{}, err
	}
	return s.state.GetAccumulatedCommission(ctx)
}

func (s *rentalLedgerService) PayoutAdmin(ctx context.Context, amount domain.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, err := s.state.GetAdmin(ctx)
	if err != nil {
		return err
	}
	if err := s.auth.Require(ctx, admin); err != nil {
		return err
	}

	if !amount.IsPositive() {
		return domain.ErrAmountMustBePositive
	}

	balance, err := s.state.GetContractBalance(ctx)
	if err != nil {
		return err
	}
	if amount.GreaterThan(balance) {
		return domain.ErrBalanceNotAvailableForAmountRequested
	}

	accumulated, err := s.state.GetAccumulatedCommission(ctx)
	if err != nil {
		return err
	}
	if amount.GreaterThan(accumulated) {
		return domain.ErrInsufficientBalance
	}

	newBalance, err := balance.Sub(amount)
	if err != nil {
		return err
	}

	if err := s.transfer.Transfer(ctx, s.custody, admin, amount); err != nil {
		return err
	}

	// Accumulated commission is a bound on each request, not a ledger
	// that drains: only the contract balance is decremented here.
	if err := s.state.SetContractBalance(ctx, newBalance); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(
		[]string{events.TopicPayoutAdmin, string(admin)},
		map[string]any{"amount": amount.String()},
	))
	return nil
}
