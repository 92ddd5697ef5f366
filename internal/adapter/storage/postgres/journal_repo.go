package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// JournalRepo implements ports.JournalRepository. Journal rows are
// append-only: there are no update or delete paths.
type JournalRepo struct {
	pool Pool
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(pool Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

// Record inserts one transaction header and its postings inside the
// caller's transaction, returning the assigned transaction id. The
// zero-sum invariant across postings is the caller's contract.
func (r *JournalRepo) Record(ctx context.Context, tx pgx.Tx, entryType domain.TransactionType, postings []domain.Posting) (int64, error) {
	if len(postings) == 0 {
		return 0, fmt.Errorf("journal entry requires at least one posting")
	}

	var txID int64
	err := tx.QueryRow(ctx,
		`INSERT INTO transaction (type) VALUES ($1) RETURNING id`,
		string(entryType),
	).Scan(&txID)
	if err != nil {
		return 0, fmt.Errorf("insert transaction header: %w", err)
	}

	for _, p := range postings {
		_, err := tx.Exec(ctx,
			`INSERT INTO posting (transaction_id, wallet_id, amount, currency) VALUES ($1, $2, $3, $4)`,
			txID, p.WalletID, p.Amount, p.Currency,
		)
		if err != nil {
			return 0, fmt.Errorf("insert posting for wallet %s: %w", p.WalletID, err)
		}
	}

	return txID, nil
}
