package ports

import (
	"context"
	"errors"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrDuplicateID is returned by repositories when an insert collides with
// an existing primary key. Random UUID collisions are astronomically
// unlikely but the provisioning retry loop handles them rather than
// assuming them impossible.
var ErrDuplicateID = errors.New("duplicate identifier")

// AccountView is the joined account + wallet projection returned by
// account lookups.
type AccountView struct {
	AccountID uuid.UUID
	Name      string
	WalletID  uuid.UUID
	Currency  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx run inside the caller's transaction.
type AccountRepository interface {
	Create(ctx context.Context, tx pgx.Tx, account *domain.Account) error
	GetWithWallet(ctx context.Context, id uuid.UUID) (*AccountView, error)
}

// WalletRepository defines persistence operations for wallets.
// GetForUpdate acquires a row-level lock scoped to the transaction and
// MUST only be called inside one.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID, currency string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal) error
}

// JournalRepository appends journal entries. Record inserts one
// transaction header plus its postings inside the caller's transaction
// and returns the assigned transaction id. Transfer entries carry
// postings summing to zero; replenishments carry a single credit line.
type JournalRepository interface {
	Record(ctx context.Context, tx pgx.Tx, entryType domain.TransactionType, postings []domain.Posting) (int64, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
