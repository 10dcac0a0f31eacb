package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = `
	user_id, main, deposit, game, earning, investment, referral,
	commission, bonus, aggregate, withdrawable, currency,
	created_at, updated_at
`

// Create inserts a new wallet. A second insert for the same user fails
// with ErrWalletExists.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		wallet.UserID,
		wallet.Main,
		wallet.Deposit,
		wallet.Game,
		wallet.Earning,
		wallet.Investment,
		wallet.Referral,
		wallet.Commission,
		wallet.Bonus,
		wallet.Aggregate,
		wallet.Withdrawable,
		wallet.Currency,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrWalletExists
		}
		return err
	}

	return nil
}

// GetByUserID retrieves a wallet without locking it.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, userID))
}

// GetByUserIDForUpdate retrieves a wallet with a FOR UPDATE row lock.
// Every balance mutation goes through this lock, which serializes
// concurrent adjustments to the same wallet.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	return scanWallet(pgxTx.QueryRow(ctx, query, userID))
}

// Update writes every balance column plus the derived aggregate and
// withdrawable in one statement, inside the caller's transaction.
func (r *WalletRepository) Update(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE wallets SET
			main = $2, deposit = $3, game = $4, earning = $5,
			investment = $6, referral = $7, commission = $8, bonus = $9,
			aggregate = $10, withdrawable = $11, updated_at = $12
		WHERE user_id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		wallet.UserID,
		wallet.Main,
		wallet.Deposit,
		wallet.Game,
		wallet.Earning,
		wallet.Investment,
		wallet.Referral,
		wallet.Commission,
		wallet.Bonus,
		wallet.Aggregate,
		wallet.Withdrawable,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// ListUserIDs pages over every wallet owner, oldest first. Used by the
// reconciliation sweep.
func (r *WalletRepository) ListUserIDs(ctx context.Context, limit, offset int) ([]string, error) {
	query := `SELECT user_id FROM wallets ORDER BY created_at, user_id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.UserID,
		&w.Main,
		&w.Deposit,
		&w.Game,
		&w.Earning,
		&w.Investment,
		&w.Referral,
		&w.Commission,
		&w.Bonus,
		&w.Aggregate,
		&w.Withdrawable,
		&w.Currency,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}

	return &w, nil
}
