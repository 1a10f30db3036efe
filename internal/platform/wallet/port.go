package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for wallet persistence operations
type Repository interface {
	// GetOrCreate returns the user's wallet, inserting a zero-balance
	// row if none exists yet.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Wallet, error)

	// GetOrCreateForUpdate returns the user's wallet with a row-level
	// lock held for the remainder of the surrounding transaction,
	// inserting a zero-balance row first if needed.
	GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*Wallet, error)

	// UpdateBalance writes a new balance for the wallet
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error

	// AppendTransaction appends one signed ledger row
	AppendTransaction(ctx context.Context, tx *Transaction) error

	// ListTransactions returns ledger rows for a wallet, newest first
	ListTransactions(ctx context.Context, walletID uuid.UUID, limit int) ([]*Transaction, error)

	// SumTransactions returns the signed sum over a wallet's ledger.
	// Used for reconciliation checks.
	SumTransactions(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
