package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Wallet, error)
	Update(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	ListUserIDs(ctx context.Context, limit, offset int) ([]string, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByType(ctx context.Context, userID string, entryType domain.EntryType) (decimal.Decimal, error)
	// SumsByCategoryAndType returns the total amount per (category, type)
	// pair for one user; amounts are unsigned, direction comes from the
	// entry type.
	SumsByCategoryAndType(ctx context.Context, userID string) ([]CategoryTypeSum, error)
}

// CategoryTypeSum is one row of the per-category ledger totals.
type CategoryTypeSum struct {
	Category domain.Category
	Type     domain.EntryType
	Total    decimal.Decimal
}

// WithdrawalRepository defines data access for withdrawals.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// RandSource draws uniform values in [0,1) for outcome decisions.
// Seedable in tests; the production source is shared and concurrency-safe.
type RandSource interface {
	Float64() float64
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// TaskEnqueuer hands work to the background queue.
type TaskEnqueuer interface {
	EnqueueReconcileWallet(ctx context.Context, userID string) error
	EnqueueCompleteWithdrawal(ctx context.Context, withdrawalID string) error
}
