package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles balance mutation endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Replenish handles POST /api/v1/replenish.
func (h *LedgerHandler) Replenish(c *gin.Context) {
	var req dto.ReplenishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("wallet_id must be a UUID"))
		return
	}

	result, err := h.ledgerSvc.Replenish(c.Request.Context(), ports.ReplenishRequest{
		WalletID: walletID,
		Currency: req.Currency,
		Amount:   req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		WalletID: result.WalletID.String(),
		Currency: result.Currency,
		Amount:   result.Amount,
	})
}

// Transfer handles POST /api/v1/transfer.
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	fromID, err := uuid.Parse(req.FromWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("from_wallet_id must be a UUID"))
		return
	}
	toID, err := uuid.Parse(req.ToWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("to_wallet_id must be a UUID"))
		return
	}

	result, err := h.ledgerSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		FromWalletID: fromID,
		FromCurrency: req.FromCurrency,
		ToWalletID:   toID,
		ToCurrency:   req.ToCurrency,
		Amount:       req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransferResponse{
		From: dto.BalanceResponse{
			WalletID: result.FromWalletID.String(),
			Currency: result.FromCurrency,
			Amount:   result.FromAmount,
		},
		To: dto.BalanceResponse{
			WalletID: result.ToWalletID.String(),
			Currency: result.ToCurrency,
			Amount:   result.ToAmount,
		},
	})
}
