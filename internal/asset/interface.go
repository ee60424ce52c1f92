// Package asset moves units of the configured payment asset between
// principals. The ledger engine only sees the TransferService interface;
// the postgres implementation keeps real account balances while the mock
// backs tests and db-less runs.
package asset

import (
	"context"
	"errors"

	"rentacar-backend/internal/domain"
)

var (
	// ErrInsufficientFunds means the source account cannot cover the
	// transfer. The engine treats any transfer error as a full abort.
	ErrInsufficientFunds = errors.New("asset: insufficient funds")
	// ErrInvalidAmount is returned for non-positive transfer amounts.
	ErrInvalidAmount = errors.New("asset: transfer amount must be positive")
)

type TransferService interface {
	// Transfer moves amount from one principal to another. It either
	// completes fully or returns an error having moved nothing.
	Transfer(ctx context.Context, from, to domain.Principal, amount domain.Amount) error
	// BalanceOf reports the current balance of a principal's account.
	BalanceOf(ctx context.Context, principal domain.Principal) (domain.Amount, error)
}
