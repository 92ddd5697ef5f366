package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/money"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService with pessimistic
// row locking. Every balance mutation and its journal entry commit in
// one database transaction.
type LedgerServiceImpl struct {
	walletRepo  ports.WalletRepository
	journalRepo ports.JournalRepository
	transactor  ports.DBTransactor
	policy      money.Policy
	currency    string
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	journalRepo ports.JournalRepository,
	transactor ports.DBTransactor,
	policy money.Policy,
	currency string,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo:  walletRepo,
		journalRepo: journalRepo,
		transactor:  transactor,
		policy:      policy,
		currency:    currency,
		log:         log,
	}
}

// Replenish credits a wallet and journals the deposit.
func (s *LedgerServiceImpl) Replenish(ctx context.Context, req ports.ReplenishRequest) (*ports.ReplenishResult, error) {
	if err := s.checkCurrency(req.Currency); err != nil {
		return nil, err
	}
	if err := s.checkAmount(req.Amount); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.WalletID, req.Currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	newBalance, err := s.policy.Add(wallet.Amount, req.Amount)
	if err != nil {
		if errors.Is(err, money.ErrAboveMaximum) {
			return nil, apperror.ErrLimitExceeded()
		}
		return nil, apperror.InternalError(fmt.Errorf("compute balance: %w", err))
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	txID, err := s.journalRepo.Record(ctx, dbTx, domain.TransactionTypeReplenish, []domain.Posting{
		{WalletID: wallet.ID, Amount: req.Amount, Currency: req.Currency},
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("record journal entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("tx_id", txID).
		Str("wallet_id", wallet.ID.String()).
		Str("amount", req.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("wallet replenished")

	return &ports.ReplenishResult{
		WalletID: wallet.ID,
		Currency: req.Currency,
		Amount:   newBalance,
	}, nil
}

// Transfer moves funds between two wallets. Rows are locked in
// ascending wallet-UUID order regardless of transfer direction, so two
// opposing transfers can never deadlock on each other.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if err := s.checkCurrency(req.FromCurrency); err != nil {
		return nil, err
	}
	if err := s.checkCurrency(req.ToCurrency); err != nil {
		return nil, err
	}
	if err := s.checkAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.FromWalletID == req.ToWalletID {
		return nil, apperror.ErrSameWallet()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	from, to, err := s.lockPair(ctx, dbTx, req)
	if err != nil {
		return nil, err
	}

	fromBalance, err := s.policy.Sub(from.Amount, req.Amount)
	if err != nil {
		if errors.Is(err, money.ErrBelowMinimum) {
			return nil, apperror.ErrInsufficientFunds()
		}
		return nil, apperror.InternalError(fmt.Errorf("compute source balance: %w", err))
	}
	toBalance, err := s.policy.Add(to.Amount, req.Amount)
	if err != nil {
		if errors.Is(err, money.ErrAboveMaximum) {
			return nil, apperror.ErrLimitExceeded()
		}
		return nil, apperror.InternalError(fmt.Errorf("compute destination balance: %w", err))
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, from.ID, fromBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update source balance: %w", err))
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, to.ID, toBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update destination balance: %w", err))
	}

	txID, err := s.journalRepo.Record(ctx, dbTx, domain.TransactionTypeTransfer, []domain.Posting{
		{WalletID: from.ID, Amount: req.Amount.Neg(), Currency: req.FromCurrency},
		{WalletID: to.ID, Amount: req.Amount, Currency: req.ToCurrency},
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("record journal entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("tx_id", txID).
		Str("from_wallet_id", from.ID.String()).
		Str("to_wallet_id", to.ID.String()).
		Str("amount", req.Amount.String()).
		Msg("transfer completed")

	return &ports.TransferResult{
		FromWalletID: from.ID,
		FromCurrency: req.FromCurrency,
		FromAmount:   fromBalance,
		ToWalletID:   to.ID,
		ToCurrency:   req.ToCurrency,
		ToAmount:     toBalance,
	}, nil
}

// lockPair acquires both wallet row locks in ascending UUID order.
func (s *LedgerServiceImpl) lockPair(ctx context.Context, dbTx pgx.Tx, req ports.TransferRequest) (from, to *domain.Wallet, err error) {
	lockFromFirst := bytes.Compare(req.FromWalletID[:], req.ToWalletID[:]) < 0

	lock := func(id uuid.UUID, currency string) (*domain.Wallet, error) {
		w, err := s.walletRepo.GetForUpdate(ctx, dbTx, id, currency)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
		}
		if w == nil {
			return nil, apperror.ErrNotFound("wallet")
		}
		return w, nil
	}

	if lockFromFirst {
		if from, err = lock(req.FromWalletID, req.FromCurrency); err != nil {
			return nil, nil, err
		}
		if to, err = lock(req.ToWalletID, req.ToCurrency); err != nil {
			return nil, nil, err
		}
	} else {
		if to, err = lock(req.ToWalletID, req.ToCurrency); err != nil {
			return nil, nil, err
		}
		if from, err = lock(req.FromWalletID, req.FromCurrency); err != nil {
			return nil, nil, err
		}
	}
	return from, to, nil
}

func (s *LedgerServiceImpl) checkCurrency(currency string) error {
	if currency != s.currency {
		return apperror.ErrUnsupportedCurrency(s.currency)
	}
	return nil
}

func (s *LedgerServiceImpl) checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.ErrInvalidAmount("amount must be positive")
	}
	if err := s.policy.Validate(amount); err != nil {
		return apperror.ErrInvalidAmount(err.Error())
	}
	return nil
}
