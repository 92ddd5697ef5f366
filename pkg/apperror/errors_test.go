package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := New("LED_003", "Insufficient funds", http.StatusPaymentRequired)
	assert.Equal(t, "[LED_003] Insufficient funds", err.Error())
}

func TestAppError_ErrorWithWrapped(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, inner)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("root cause")
	err := InternalError(inner)
	assert.ErrorIs(t, err, inner)
}

func TestAppError_ErrorsAs(t *testing.T) {
	var err error = ErrInsufficientFunds()

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "LED_003", appErr.Code)
	assert.Equal(t, http.StatusPaymentRequired, appErr.HTTPStatus)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"invalid amount", ErrInvalidAmount("negative"), "LED_001", http.StatusBadRequest},
		{"not found", ErrNotFound("wallet"), "LED_002", http.StatusNotFound},
		{"insufficient funds", ErrInsufficientFunds(), "LED_003", http.StatusPaymentRequired},
		{"limit exceeded", ErrLimitExceeded(), "LED_004", http.StatusUnprocessableEntity},
		{"unsupported currency", ErrUnsupportedCurrency("USD"), "LED_005", http.StatusBadRequest},
		{"same wallet", ErrSameWallet(), "LED_006", http.StatusBadRequest},
		{"provisioning exhausted", ErrProvisioningExhausted(5), "ACC_001", http.StatusConflict},
		{"rate limited", ErrRateLimitExceeded(), "RATE_001", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}
}

func TestErrNotFound_Message(t *testing.T) {
	err := ErrNotFound("wallet")
	assert.Equal(t, "wallet not found", err.Message)
}

func TestErrProvisioningExhausted_Message(t *testing.T) {
	err := ErrProvisioningExhausted(5)
	assert.Contains(t, err.Message, "5 attempts")
}
