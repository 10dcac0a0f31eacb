package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository over the append-only
// ledger_entries table. Entries are never updated or deleted.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends one ledger entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (
			id, user_id, type, category, amount, status, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Type,
		entry.Category,
		entry.Amount,
		entry.Status,
		entry.Description,
		entry.CreatedAt,
	)

	return err
}

// ListByUser returns a user's entries, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, type, category, amount, status, description, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Type,
			&e.Category,
			&e.Amount,
			&e.Status,
			&e.Description,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// SumByType totals a user's entries of one type. Feeds the lifetime
// profit figure the outcome engine reads.
func (r *EntryRepository) SumByType(ctx context.Context, userID string, entryType domain.EntryType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE user_id = $1 AND type = $2
	`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, entryType).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// SumsByCategoryAndType returns per-category, per-type totals for one
// user. Reconciliation replays these against the live wallet.
func (r *EntryRepository) SumsByCategoryAndType(ctx context.Context, userID string) ([]usecase.CategoryTypeSum, error) {
	query := `
		SELECT category, type, COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE user_id = $1
		GROUP BY category, type
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []usecase.CategoryTypeSum
	for rows.Next() {
		var s usecase.CategoryTypeSum
		if err := rows.Scan(&s.Category, &s.Type, &s.Total); err != nil {
			return nil, err
		}
		sums = append(sums, s)
	}

	return sums, rows.Err()
}
