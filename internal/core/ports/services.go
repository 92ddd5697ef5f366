package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Service Ports (Business Logic) ---

// AccountService provisions accounts and serves account lookups.
type AccountService interface {
	// CreateAccount creates an account plus its single wallet atomically,
	// retrying identifier collisions up to the configured attempt bound.
	CreateAccount(ctx context.Context, name string) (*AccountCreated, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountView, error)
}

// AccountCreated is the provisioning result.
type AccountCreated struct {
	AccountID uuid.UUID
	WalletID  uuid.UUID
}

// LedgerService performs the two balance mutations. Every mutation runs
// in a single database transaction: lock, validate, write balances,
// append the journal entry, commit.
type LedgerService interface {
	Replenish(ctx context.Context, req ReplenishRequest) (*ReplenishResult, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// ReplenishRequest holds validated input for an external deposit.
type ReplenishRequest struct {
	WalletID uuid.UUID
	Currency string
	Amount   decimal.Decimal
}

// ReplenishResult carries the post-mutation balance.
type ReplenishResult struct {
	WalletID uuid.UUID
	Currency string
	Amount   decimal.Decimal
}

// TransferRequest holds validated input for a wallet-to-wallet move.
// The boundary guarantees both currencies match the supported currency
// before the request reaches the core.
type TransferRequest struct {
	FromWalletID uuid.UUID
	FromCurrency string
	ToWalletID   uuid.UUID
	ToCurrency   string
	Amount       decimal.Decimal
}

// TransferResult carries both post-mutation balances.
type TransferResult struct {
	FromWalletID uuid.UUID
	FromCurrency string
	FromAmount   decimal.Decimal
	ToWalletID   uuid.UUID
	ToCurrency   string
	ToAmount     decimal.Decimal
}
