package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentacar-backend/internal/domain"
)

type postgresTransferService struct {
	db *sql.DB
}

// NewPostgresTransferService keeps asset balances in the asset_accounts
// table and moves funds inside a single database transaction.
func NewPostgresTransferService(db *sql.DB) TransferService {
	return &postgresTransferService{db: db}
}

func (s *postgresTransferService) Transfer(ctx context.Context, from, to domain.Principal, amount domain.Amount) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var fromBalance domain.Amount
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM asset_accounts WHERE principal = $1 FOR UPDATE`, from).
		Scan(&fromBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInsufficientFunds
	}
	if err != nil {
		return err
	}
	if fromBalance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	newFrom, err := fromBalance.Sub(amount)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE asset_accounts SET balance = $2 WHERE principal = $1`, from, newFrom); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO asset_accounts (principal, balance) VALUES ($1, $2)
		 ON CONFLICT (principal) DO UPDATE SET balance = asset_accounts.balance + EXCLUDED.balance`,
		to, amount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("asset: commit transfer: %w", err)
	}
	return nil
}

func (s *postgresTransferService) BalanceOf(ctx context.Context, principal domain.Principal) (domain.Amount, error) {
	var balance domain.Amount
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM asset_accounts WHERE principal = $1`, principal).
		Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewAmount(0), nil
	}
	if err != nil {
		return domain.Amount{}, err
	}
	return balance, nil
}
