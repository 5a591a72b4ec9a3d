package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	pool *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool}
}

// Create creates a new pending deposit.
func (r *DepositRepository) Create(ctx context.Context, deposit *domain.PendingDeposit) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pending_deposits (id, account_id, amount, status, submitted_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		deposit.ID,
		deposit.AccountID,
		decimalToNumeric(deposit.Amount),
		string(deposit.Status),
		timeToPgTimestamptz(deposit.SubmittedAt),
		optionalTimeToPgTimestamptz(deposit.ApprovedAt),
	)

	return err
}

// GetByID retrieves a deposit by ID.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.PendingDeposit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, account_id, amount, status, submitted_at, approved_at
		FROM pending_deposits
		WHERE id = $1`, id)

	return scanDeposit(row)
}

// GetByIDForUpdate retrieves a deposit by ID with a FOR UPDATE lock, so the
// pending -> approved transition is serialized against concurrent approvals.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PendingDeposit, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT id, account_id, amount, status, submitted_at, approved_at
		FROM pending_deposits
		WHERE id = $1
		FOR UPDATE`, id)

	return scanDeposit(row)
}

// UpdateStatus flips the status of a deposit inside tx.
func (r *DepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.DepositStatus, approvedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE pending_deposits
		SET status = $2, approved_at = $3
		WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(approvedAt))

	return err
}

// ListPending lists deposits still awaiting approval, oldest first.
func (r *DepositRepository) ListPending(ctx context.Context, limit, offset int) ([]*domain.PendingDeposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, amount, status, submitted_at, approved_at
		FROM pending_deposits
		WHERE status = $1
		ORDER BY submitted_at ASC, id ASC
		LIMIT $2 OFFSET $3`, string(domain.DepositStatusPending), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*domain.PendingDeposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, deposit)
	}

	return deposits, rows.Err()
}

func scanDeposit(row pgx.Row) (*domain.PendingDeposit, error) {
	var (
		deposit     domain.PendingDeposit
		amount      pgtype.Numeric
		status      string
		submittedAt pgtype.Timestamptz
		approvedAt  pgtype.Timestamptz
	)

	err := row.Scan(&deposit.ID, &deposit.AccountID, &amount, &status, &submittedAt, &approvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}

	deposit.Amount = numericToDecimal(amount)
	deposit.Status = domain.DepositStatus(status)
	deposit.SubmittedAt = submittedAt.Time
	if approvedAt.Valid {
		at := approvedAt.Time
		deposit.ApprovedAt = &at
	}

	return &deposit, nil
}

func optionalTimeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
