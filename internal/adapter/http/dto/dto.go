package dto

import "github.com/shopspring/decimal"

// CreateAccountRequest is the request body for account provisioning.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,max=32"`
}

// CreateAccountResponse is the response body for a provisioned account.
type CreateAccountResponse struct {
	AccountID string `json:"account_id"`
	WalletID  string `json:"wallet_id"`
}

// AccountResponse is the response body for an account query.
type AccountResponse struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	WalletID  string          `json:"wallet_id"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

// ReplenishRequest is the request body for a wallet deposit.
type ReplenishRequest struct {
	WalletID string          `json:"wallet_id" binding:"required,uuid"`
	Currency string          `json:"currency" binding:"required,currency"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest is the request body for moving funds between wallets.
type TransferRequest struct {
	FromWalletID string          `json:"from_wallet_id" binding:"required,uuid"`
	FromCurrency string          `json:"from_currency" binding:"required,currency"`
	ToWalletID   string          `json:"to_wallet_id" binding:"required,uuid"`
	ToCurrency   string          `json:"to_currency" binding:"required,currency"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// BalanceResponse reports a wallet's balance after an operation.
type BalanceResponse struct {
	WalletID string          `json:"wallet_id"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// TransferResponse reports both balances after a transfer.
type TransferResponse struct {
	From BalanceResponse `json:"from"`
	To   BalanceResponse `json:"to"`
}
