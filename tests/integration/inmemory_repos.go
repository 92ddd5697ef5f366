package integration

import (
	"context"
	"fmt"
	"sync"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// inMemoryDB is the shared backing store for the in-memory repos. All
// access goes through the serializing transactor below, which emulates
// the mutual exclusion that SELECT FOR UPDATE provides in production,
// so balance invariants can be asserted exactly under concurrency.
type inMemoryDB struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
	wallets  map[uuid.UUID]*domain.Wallet
	headers  []domain.Transaction
	postings []domain.Posting
	nextTxID int64
}

func newInMemoryDB() *inMemoryDB {
	return &inMemoryDB{
		accounts: make(map[uuid.UUID]*domain.Account),
		wallets:  make(map[uuid.UUID]*domain.Wallet),
		nextTxID: 1,
	}
}

// postingCount returns the number of journal lines recorded so far.
func (db *inMemoryDB) postingCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.postings)
}

// journalSum returns the signed sum of all postings for a wallet.
func (db *inMemoryDB) journalSum(walletID uuid.UUID) decimal.Decimal {
	db.mu.RLock()
	defer db.mu.RUnlock()
	sum := decimal.Zero
	for _, p := range db.postings {
		if p.WalletID == walletID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	db *inMemoryDB
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, exists := r.db.accounts[a.ID]; exists {
		return fmt.Errorf("insert account %s: %w", a.ID, ports.ErrDuplicateID)
	}
	cp := *a
	r.db.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetWithWallet(ctx context.Context, id uuid.UUID) (*ports.AccountView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, nil
	}
	for _, w := range r.db.wallets {
		if w.AccountID == id {
			return &ports.AccountView{
				AccountID: a.ID,
				Name:      a.Name,
				WalletID:  w.ID,
				Currency:  w.Currency,
				Amount:    w.Amount,
				CreatedAt: a.CreatedAt,
			}, nil
		}
	}
	return nil, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	db *inMemoryDB
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, exists := r.db.wallets[w.ID]; exists {
		return fmt.Errorf("insert wallet %s: %w", w.ID, ports.ErrDuplicateID)
	}
	cp := *w
	r.db.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	w, ok := r.db.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID, currency string) (*domain.Wallet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	w, ok := r.db.wallets[id]
	if !ok || w.Currency != currency {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	w, ok := r.db.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	w.Amount = amount
	return nil
}

// --- In-Memory Journal Repo ---

type inMemoryJournalRepo struct {
	db *inMemoryDB
}

func (r *inMemoryJournalRepo) Record(ctx context.Context, tx pgx.Tx, entryType domain.TransactionType, postings []domain.Posting) (int64, error) {
	if len(postings) == 0 {
		return 0, fmt.Errorf("journal entry requires at least one posting")
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	txID := r.db.nextTxID
	r.db.nextTxID++
	r.db.headers = append(r.db.headers, domain.Transaction{ID: txID, Type: entryType})
	for _, p := range postings {
		p.TransactionID = txID
		r.db.postings = append(r.db.postings, p)
	}
	return txID, nil
}

// --- Serializing Transactor ---

// serializingTransactor hands out one transaction at a time. Commit or
// Rollback releases the lock; the deferred Rollback after a Commit is a
// no-op thanks to sync.Once.
type serializingTransactor struct {
	mu sync.Mutex
}

func (t *serializingTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	tx := &memTx{}
	tx.release = func() { t.mu.Unlock() }
	return tx, nil
}

// memTx is a pgx.Tx whose only real behaviour is releasing the
// transactor lock exactly once.
type memTx struct {
	once    sync.Once
	release func()
}

func (t *memTx) done() {
	t.once.Do(t.release)
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }
