package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger Business Logic (LED) ----

func ErrInvalidAmount(reason string) *AppError {
	return New("LED_001", fmt.Sprintf("Invalid amount: %s", reason), http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInsufficientFunds() *AppError {
	return New("LED_003", "Insufficient funds in source wallet", http.StatusPaymentRequired)
}

func ErrLimitExceeded() *AppError {
	return New("LED_004", "Wallet balance limit exceeded", http.StatusUnprocessableEntity)
}

func ErrUnsupportedCurrency(supported string) *AppError {
	return New("LED_005", fmt.Sprintf("only %s currency is supported", supported), http.StatusBadRequest)
}

func ErrSameWallet() *AppError {
	return New("LED_006", "Source and destination wallets must differ", http.StatusBadRequest)
}

// ---- Account Provisioning (ACC) ----

func ErrProvisioningExhausted(attempts int) *AppError {
	return New("ACC_001", fmt.Sprintf("Account provisioning failed after %d attempts; try again later", attempts), http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 error for malformed request input.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
