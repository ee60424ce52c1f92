package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

// Singleton entity keys in the contract_state table.
const (
	keyAdmin                 = "admin"
	keyPaymentToken          = "payment_token"
	keyContractBalance       = "contract_balance"
	keyAccumulatedCommission = "accumulated_commission"
)

type contractStateRepository struct {
	db *sql.DB
}

func NewContractStateRepository(db *sql.DB) repository.ContractStateRepository {
	return &contractStateRepository{db: db}
}

func (r *contractStateRepository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM contract_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *contractStateRepository) set(ctx context.Context, key, value string) error {
	query := `INSERT INTO contract_state (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

func (r *contractStateRepository) HasAdmin(ctx context.Context) (bool, error) {
	_, ok, err := r.get(ctx, keyAdmin)
	return ok, err
}

func (r *contractStateRepository) GetAdmin(ctx context.Context) (domain.Principal, error) {
	value, ok, err := r.get(ctx, keyAdmin)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrAdminNotFound
	}
	return domain.Principal(value), nil
}

func (r *contractStateRepository) SetAdmin(ctx context.Context, admin domain.Principal) error {
	return r.set(ctx, keyAdmin, string(admin))
}

func (r *contractStateRepository) GetPaymentToken(ctx context.Context) (domain.Principal, error) {
	value, ok, err := r.get(ctx, keyPaymentToken)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return domain.Principal(value), nil
}

func (r *contractStateRepository) SetPaymentToken(ctx context.Context, token domain.Principal) error {
	return r.set(ctx, keyPaymentToken, string(token))
}

func (r *contractStateRepository) getAmount(ctx context.Context, key string) (domain.Amount, error) {
	value, ok, err := r.get(ctx, key)
	if err != nil {
		return domain.Amount{}, err
	}
	if !ok {
		// Counters default to zero before the first write.
		return domain.NewAmount(0), nil
	}
	return domain.ParseAmount(value)
}

func (r *contractStateRepository) GetContractBalance(ctx context.Context) (domain.Amount, error) {
	return r.getAmount(ctx, keyContractBalance)
}

func (r *contractStateRepository) SetContractBalance(ctx context.Context, balance domain.Amount) error {
	return r.set(ctx, keyContractBalance, balance.String())
}

func (r *contractStateRepository) GetAccumulatedCommission(ctx context.Context) (domain.Amount, error) {
	return r.getAmount(ctx, keyAccumulatedCommission)
}

func (r *contractStateRepository) SetAccumulatedCommission(ctx context.Context, commission domain.Amount) error {
	return r.set(ctx, keyAccumulatedCommission, commission.String())
}
