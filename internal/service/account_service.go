package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	accountRepo ports.AccountRepository
	walletRepo  ports.WalletRepository
	transactor  ports.DBTransactor
	currency    string
	maxAttempts int
	log         zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(
	accountRepo ports.AccountRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	currency string,
	maxAttempts int,
	log zerolog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		walletRepo:  walletRepo,
		transactor:  transactor,
		currency:    currency,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// CreateAccount provisions an account together with its wallet. Both
// rows are inserted in one transaction, so no account ever exists
// without a wallet. Identifier collisions are retried with fresh UUIDs
// up to the configured attempt budget.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, name string) (*ports.AccountCreated, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("account name is required")
	}
	if len(name) > domain.MaxAccountNameLength {
		return nil, apperror.Validation(fmt.Sprintf("account name exceeds %d characters", domain.MaxAccountNameLength))
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		created, err := s.provision(ctx, name)
		if err == nil {
			s.log.Info().
				Str("account_id", created.AccountID.String()).
				Str("wallet_id", created.WalletID.String()).
				Int("attempt", attempt).
				Msg("account provisioned")
			return created, nil
		}
		if errors.Is(err, ports.ErrDuplicateID) {
			s.log.Warn().
				Int("attempt", attempt).
				Msg("identifier collision during account provisioning, retrying")
			continue
		}
		return nil, err
	}

	return nil, apperror.ErrProvisioningExhausted(s.maxAttempts)
}

// provision performs a single provisioning attempt with fresh UUIDs.
func (s *AccountServiceImpl) provision(ctx context.Context, name string) (*ports.AccountCreated, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	wallet := &domain.Wallet{
		ID:        uuid.New(),
		AccountID: account.ID,
		Currency:  s.currency,
		Amount:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accountRepo.Create(ctx, dbTx, account); err != nil {
		if errors.Is(err, ports.ErrDuplicateID) {
			return nil, err
		}
		return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
	}
	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		if errors.Is(err, ports.ErrDuplicateID) {
			return nil, err
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	return &ports.AccountCreated{
		AccountID: account.ID,
		WalletID:  wallet.ID,
	}, nil
}

// GetAccount fetches an account with its wallet balance.
func (s *AccountServiceImpl) GetAccount(ctx context.Context, id uuid.UUID) (*ports.AccountView, error) {
	view, err := s.accountRepo.GetWithWallet(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if view == nil {
		return nil, apperror.ErrNotFound("account")
	}
	return view, nil
}
