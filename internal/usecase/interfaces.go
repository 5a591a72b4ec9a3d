package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateCredential(ctx context.Context, id, credentialHash string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// HistoryRepository defines data access for the append-only history log.
type HistoryRepository interface {
	// Append writes one entry inside tx and returns the store-assigned sequence.
	Append(ctx context.Context, tx Transaction, entry *domain.HistoryEntry) (int64, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error)
}

// DepositRepository defines data access for pending deposits.
type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.PendingDeposit) error
	GetByID(ctx context.Context, id string) (*domain.PendingDeposit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PendingDeposit, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.DepositStatus, approvedAt time.Time) error
	ListPending(ctx context.Context, limit, offset int) ([]*domain.PendingDeposit, error)
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

// Retrier re-runs a unit of work on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
