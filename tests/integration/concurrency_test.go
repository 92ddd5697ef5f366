package integration

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balanceOf reads a wallet balance straight from the store.
func (a *testApp) balanceOf(t *testing.T, walletID string) decimal.Decimal {
	t.Helper()
	id, err := uuid.Parse(walletID)
	require.NoError(t, err)

	a.db.mu.RLock()
	defer a.db.mu.RUnlock()
	w, ok := a.db.wallets[id]
	require.True(t, ok, "wallet %s not found", walletID)
	return w.Amount
}

// One hundred concurrent credits of 1.00 each must all land. Every
// mutation runs under the transactor, so no update may be lost and
// every credit must leave a journal line behind.
func TestConcurrency_ParallelReplenish(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID := app.createAccount(t, "hot-wallet")

	const workers = 100
	var wg sync.WaitGroup
	statuses := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _ := app.post(t, "/api/v1/replenish",
				fmt.Sprintf(`{"wallet_id":%q,"currency":"USD","amount":"1.00"}`, walletID))
			statuses[i] = status
		}(i)
	}
	wg.Wait()

	for i, status := range statuses {
		require.Equal(t, http.StatusOK, status, "request %d failed", i)
	}

	final := app.balanceOf(t, walletID)
	assert.True(t, final.Equal(decimal.RequireFromString("100.00")),
		"expected 100.00, got %s", final)

	id, _ := uuid.Parse(walletID)
	assert.Equal(t, workers, app.db.postingCount())
	assert.True(t, app.db.journalSum(id).Equal(final),
		"journal sum %s does not match balance %s", app.db.journalSum(id), final)
}

// Transfers in both directions between two wallets. Whatever the
// interleaving, the combined balance is conserved and per-wallet
// balances match the journal.
func TestConcurrency_BidirectionalTransfers(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletA := app.createAccount(t, "alpha")
	_, walletB := app.createAccount(t, "beta")
	app.replenish(t, walletA, "50.00")
	app.replenish(t, walletB, "50.00")

	transfer := func(from, to string) int {
		status, _ := app.post(t, "/api/v1/transfer", fmt.Sprintf(
			`{"from_wallet_id":%q,"from_currency":"USD","to_wallet_id":%q,"to_currency":"USD","amount":"1.00"}`,
			from, to))
		return status
	}

	const rounds = 25
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			transfer(walletA, walletB)
		}()
		go func() {
			defer wg.Done()
			transfer(walletB, walletA)
		}()
	}
	wg.Wait()

	balanceA := app.balanceOf(t, walletA)
	balanceB := app.balanceOf(t, walletB)

	total := balanceA.Add(balanceB)
	assert.True(t, total.Equal(decimal.RequireFromString("100.00")),
		"total balance not conserved: %s + %s = %s", balanceA, balanceB, total)

	// Each wallet's balance equals its initial credit plus its journal sum.
	idA, _ := uuid.Parse(walletA)
	idB, _ := uuid.Parse(walletB)
	assert.True(t, app.db.journalSum(idA).Equal(balanceA))
	assert.True(t, app.db.journalSum(idB).Equal(balanceB))
}

// A burst over the per-client budget must come back 429 with the
// standard rate limit headers. The burst is sized so that at least
// twenty requests exceed the budget even if it straddles a window
// boundary.
func TestConcurrency_RateLimitEnforced(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// Accounts group allows 30 per minute.
	var limited int
	for i := 0; i < 80; i++ {
		resp, err := http.Post(app.server.URL+"/api/v1/accounts", "application/json",
			strings.NewReader(fmt.Sprintf(`{"name":"burst-%d"}`, i)))
		require.NoError(t, err)
		if resp.StatusCode == http.StatusTooManyRequests {
			limited++
			assert.NotEmpty(t, resp.Header.Get("Retry-After"))
		}
		resp.Body.Close()
	}
	assert.GreaterOrEqual(t, limited, 20)
}
