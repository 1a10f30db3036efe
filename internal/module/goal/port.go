package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
)

// Repository defines persistence for goals
type Repository interface {
	// Create inserts a new goal
	Create(ctx context.Context, g *Goal) error

	// Get returns the goal scoped to (id, userID), or nil when absent
	Get(ctx context.Context, id, userID uuid.UUID) (*Goal, error)

	// GetForUpdate is Get with a row-level lock for the surrounding
	// transaction
	GetForUpdate(ctx context.Context, id, userID uuid.UUID) (*Goal, error)

	// List returns the user's goals, newest first. The completed
	// filter is applied when non-nil.
	List(ctx context.Context, userID uuid.UUID, completed *bool) ([]*Goal, error)

	// Update persists current_amount, completed and completed_at
	Update(ctx context.Context, g *Goal) error

	// Delete removes the goal scoped to (id, userID). Reports whether
	// a row was deleted.
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// WalletService is the slice of the wallet engine goals need
type WalletService interface {
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType wallet.TransactionType, description string) (*wallet.Wallet, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
