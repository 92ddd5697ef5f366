package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount() *domain.Account {
	return &domain.Account{
		ID:        uuid.New(),
		Name:      "alice",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountViewColumns() []string {
	return []string{"id", "name", "wallet_id", "currency", "amount", "created_at"}
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO account").
		WithArgs(a.ID, a.Name, a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Create_DuplicateID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO account").
		WithArgs(a.ID, a.Name, a.CreatedAt, a.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "account_pkey"})

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, a)
	assert.True(t, errors.Is(err, ports.ErrDuplicateID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetWithWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()
	walletID := uuid.New()
	amount := decimal.RequireFromString("42.00")

	mock.ExpectQuery("SELECT .+ FROM account.+JOIN wallet").
		WithArgs(a.ID).
		WillReturnRows(pgxmock.NewRows(accountViewColumns()).AddRow(
			a.ID, a.Name, walletID, "USD", amount, a.CreatedAt,
		))

	result, err := repo.GetWithWallet(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.ID, result.AccountID)
	assert.Equal(t, a.Name, result.Name)
	assert.Equal(t, walletID, result.WalletID)
	assert.Equal(t, "USD", result.Currency)
	assert.True(t, amount.Equal(result.Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetWithWallet_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM account.+JOIN wallet").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(accountViewColumns()))

	result, err := repo.GetWithWallet(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
