package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// WithdrawalRepository implements usecase.WithdrawalRepository.
type WithdrawalRepository struct {
	pool *pgxpool.Pool
}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(pool *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{pool: pool}
}

// Create inserts a pending withdrawal. First step of the saga.
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *domain.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (
			id, user_id, amount, destination, reference, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		withdrawal.ID,
		withdrawal.UserID,
		withdrawal.Amount,
		withdrawal.Destination,
		withdrawal.Reference,
		withdrawal.Status,
		withdrawal.CreatedAt,
		withdrawal.UpdatedAt,
	)

	return err
}

// Delete removes a pending withdrawal. Compensation step of the saga; a
// withdrawal that got past pending is never deleted, only failed.
func (r *WithdrawalRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM withdrawals WHERE id = $1 AND status = $2`,
		id, domain.WithdrawalStatusPending,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWithdrawalNotFound
	}

	return nil
}

// GetByID retrieves one withdrawal.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	query := `
		SELECT id, user_id, amount, destination, reference, status, created_at, updated_at
		FROM withdrawals
		WHERE id = $1
	`

	var w domain.Withdrawal
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID,
		&w.UserID,
		&w.Amount,
		&w.Destination,
		&w.Reference,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}

	return &w, nil
}

// UpdateStatus moves a withdrawal through its lifecycle.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE withdrawals SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWithdrawalNotFound
	}

	return nil
}

// ListByUser returns a user's withdrawals, newest first.
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error) {
	query := `
		SELECT id, user_id, amount, destination, reference, status, created_at, updated_at
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []*domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		err := rows.Scan(
			&w.ID,
			&w.UserID,
			&w.Amount,
			&w.Destination,
			&w.Reference,
			&w.Status,
			&w.CreatedAt,
			&w.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, &w)
	}

	return withdrawals, rows.Err()
}
