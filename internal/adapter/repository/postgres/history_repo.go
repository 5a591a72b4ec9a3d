package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// HistoryRepository implements usecase.HistoryRepository over the
// append-only history table. The sequence is a BIGSERIAL assigned on insert;
// rows are never updated or deleted.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Append writes one entry inside tx and returns the assigned sequence.
func (r *HistoryRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.HistoryEntry) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var sequence int64

	err := pgxTx.QueryRow(ctx, `
		INSERT INTO history (account_id, action, amount, counterparty, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING sequence`,
		entry.AccountID,
		string(entry.Action),
		decimalToNumeric(entry.Amount),
		entry.Counterparty,
		timeToPgTimestamptz(entry.CreatedAt),
	).Scan(&sequence)
	if err != nil {
		return 0, err
	}

	return sequence, nil
}

// ListByAccount retrieves an account's entries by sequence ascending.
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sequence, account_id, action, amount, counterparty, created_at
		FROM history
		WHERE account_id = $1
		ORDER BY sequence ASC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var (
			entry     domain.HistoryEntry
			action    string
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&entry.Sequence, &entry.AccountID, &action, &amount, &entry.Counterparty, &createdAt)
		if err != nil {
			return nil, err
		}

		entry.Action = domain.Action(action)
		entry.Amount = numericToDecimal(amount)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
