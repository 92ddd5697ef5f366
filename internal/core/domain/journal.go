package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType labels the economic event a journal entry records.
type TransactionType string

const (
	// TransactionTypeReplenish is an external deposit into one wallet.
	TransactionTypeReplenish TransactionType = "REPLENISH"
	// TransactionTypeTransfer moves value between two wallets.
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is the append-only journal header. Ids are monotonic and
// assigned by the store; rows are never updated or deleted.
type Transaction struct {
	ID        int64           `json:"id"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// Posting is one signed line item of a journal transaction. A transfer
// carries an exactly inverse pair of postings summing to zero; a
// replenish carries a single inflow posting, since the offsetting cash
// source lives outside the system.
type Posting struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transaction_id"`
	WalletID      uuid.UUID       `json:"wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}
