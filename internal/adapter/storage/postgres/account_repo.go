package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account inside the caller's transaction.
func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `INSERT INTO account (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err := tx.Exec(ctx, query, a.ID, a.Name, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert account %s: %w", a.ID, ports.ErrDuplicateID)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetWithWallet fetches an account joined with its wallet.
func (r *AccountRepo) GetWithWallet(ctx context.Context, id uuid.UUID) (*ports.AccountView, error) {
	query := `SELECT account.id, account.name, wallet.id, wallet.currency, wallet.amount, account.created_at
		FROM account
		JOIN wallet ON wallet.account_id = account.id
		WHERE account.id = $1`

	v := &ports.AccountView{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.AccountID, &v.Name, &v.WalletID, &v.Currency, &v.Amount, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account with wallet: %w", err)
	}
	return v, nil
}
