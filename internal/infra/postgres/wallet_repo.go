package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
)

// WalletRepository implements the wallet repository using PostgreSQL
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new PostgreSQL wallet repository
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = `id, user_id, balance, created_at, updated_at`

// GetOrCreate returns the user's wallet, inserting a zero-balance row
// if none exists yet.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	return r.getOrCreate(ctx, userID, false)
}

// GetOrCreateForUpdate returns the user's wallet with a row-level lock
// held for the remainder of the surrounding transaction.
func (r *WalletRepository) GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	return r.getOrCreate(ctx, userID, true)
}

func (r *WalletRepository) getOrCreate(ctx context.Context, userID uuid.UUID, forUpdate bool) (*wallet.Wallet, error) {
	q := queryerFrom(ctx, r.pool)

	// Upsert first so the subsequent SELECT always finds a row. The
	// DO NOTHING arm keeps concurrent first-touches race-free.
	insert := `
		INSERT INTO wallets (id, user_id, balance, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, uuid.New(), userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to upsert wallet: %w", err)
	}

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	w := &wallet.Wallet{}
	err := q.QueryRow(ctx, query, userID).Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan wallet: %w", err)
	}
	return w, nil
}

// UpdateBalance writes a new balance for the wallet
func (r *WalletRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $2, updated_at = $3 WHERE id = $1`

	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, query, walletID, balance, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound
	}
	return nil
}

// AppendTransaction appends one signed ledger row
func (r *WalletRepository) AppendTransaction(ctx context.Context, t *wallet.Transaction) error {
	query := `
		INSERT INTO wallet_transactions (id, wallet_id, amount, transaction_type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		t.ID,
		t.WalletID,
		t.Amount,
		t.Type,
		t.Description,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ListTransactions returns ledger rows for a wallet, newest first
func (r *WalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, limit int) ([]*wallet.Transaction, error) {
	query := `
		SELECT id, wallet_id, amount, transaction_type, description, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*wallet.Transaction
	for rows.Next() {
		t := &wallet.Transaction{}
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SumTransactions returns the signed sum over a wallet's ledger
func (r *WalletRepository) SumTransactions(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM wallet_transactions WHERE wallet_id = $1`

	var sum decimal.Decimal
	if err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, walletID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}
