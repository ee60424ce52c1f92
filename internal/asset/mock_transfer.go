package asset

import (
	"context"
	"sync"

	"rentacar-backend/internal/domain"
)

// MockTransferService keeps balances in memory. Mint seeds accounts the
// way a token admin would on a test network.
type MockTransferService struct {
	mu       sync.Mutex
	balances map[domain.Principal]domain.Amount
}

func NewMockTransferService() *MockTransferService {
	return &MockTransferService{
		balances: make(map[domain.Principal]domain.Amount),
	}
}

// Mint credits a principal's account out of thin air.
func (s *MockTransferService) Mint(principal domain.Principal, amount domain.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.balances[principal]
	if !ok {
		current = domain.NewAmount(0)
	}
	updated, err := current.Add(amount)
	if err != nil {
		return
	}
	s.balances[principal] = updated
}

func (s *MockTransferService) Transfer(_ context.Context, from, to domain.Principal, amount domain.Amount) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fromBalance, ok := s.balances[from]
	if !ok || fromBalance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	newFrom, err := fromBalance.Sub(amount)
	if err != nil {
		return err
	}
	toBalance, ok := s.balances[to]
	if !ok {
		toBalance = domain.NewAmount(0)
	}
	newTo, err := toBalance.Add(amount)
	if err != nil {
		return err
	}

	s.balances[from] = newFrom
	s.balances[to] = newTo
	return nil
}

func (s *MockTransferService) BalanceOf(_ context.Context, principal domain.Principal) (domain.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[principal]
	if !ok {
		return domain.NewAmount(0), nil
	}
	return balance, nil
}
