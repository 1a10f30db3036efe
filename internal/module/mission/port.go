package mission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
)

// Repository defines persistence for missions, user progress and the
// activity log
type Repository interface {
	// GetByActiveDate returns the mission active on the given UTC day,
	// or nil when none is scheduled
	GetByActiveDate(ctx context.Context, day time.Time) (*Mission, error)

	// GetOrCreateUserMission upserts the user's progress row with
	// empty progress and returns it
	GetOrCreateUserMission(ctx context.Context, userID, missionID uuid.UUID) (*UserMission, error)

	// GetOrCreateUserMissionForUpdate is GetOrCreateUserMission with a
	// row-level lock for the surrounding transaction
	GetOrCreateUserMissionForUpdate(ctx context.Context, userID, missionID uuid.UUID) (*UserMission, error)

	// UpdateUserMission persists progress, completed and completed_at
	UpdateUserMission(ctx context.Context, um *UserMission) error

	// InsertExpense appends an expense row
	InsertExpense(ctx context.Context, e *Expense) error

	// InsertSaving appends a saving row
	InsertSaving(ctx context.Context, s *Saving) error

	// ListExpenses returns the user's expenses, newest first
	ListExpenses(ctx context.Context, userID uuid.UUID, limit int) ([]*Expense, error)

	// ListSavings returns the user's savings, newest first
	ListSavings(ctx context.Context, userID uuid.UUID, limit int) ([]*Saving, error)

	// ListRecentActivities returns the newest expense and saving rows
	// merged into one list, newest first
	ListRecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*Activity, error)
}

// DailyCache is an optional cache for the day's mission row. A cache
// error is never surfaced to callers.
type DailyCache interface {
	// GetDaily returns the cached mission for a UTC day key
	GetDaily(ctx context.Context, day time.Time) (*Mission, bool, error)

	// SetDaily caches the mission until the end of its UTC day
	SetDaily(ctx context.Context, day time.Time, m *Mission) error
}

// WalletService is the slice of the wallet engine missions need
type WalletService interface {
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType wallet.TransactionType, description string) (*wallet.Wallet, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
