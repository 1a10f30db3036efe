package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
)

// CatalogRepository defines read access to the item catalog
type CatalogRepository interface {
	// ListCharacters returns all characters ordered by price asc, name asc
	ListCharacters(ctx context.Context) ([]*Character, error)

	// ListStarterCharacters returns characters with is_starter = true
	ListStarterCharacters(ctx context.Context) ([]*Character, error)

	// GetCharacter returns a character by ID
	GetCharacter(ctx context.Context, id uuid.UUID) (*Character, error)

	// ListFoods returns all foods ordered by price asc, name asc
	ListFoods(ctx context.Context) ([]*Food, error)

	// GetFood returns a food by ID
	GetFood(ctx context.Context, id uuid.UUID) (*Food, error)
}

// InventoryRepository defines access to owned item stacks
type InventoryRepository interface {
	// List returns all inventory rows for a user
	List(ctx context.Context, userID uuid.UUID) ([]*InventoryItem, error)

	// Get returns the user's stack for one item, or nil when absent
	Get(ctx context.Context, userID uuid.UUID, itemType ItemType, itemID uuid.UUID) (*InventoryItem, error)

	// GetForUpdate is Get with a row-level lock for the surrounding
	// transaction
	GetForUpdate(ctx context.Context, userID uuid.UUID, itemType ItemType, itemID uuid.UUID) (*InventoryItem, error)

	// AddQuantity upserts the stack, incrementing quantity by qty
	AddQuantity(ctx context.Context, userID uuid.UUID, itemType ItemType, itemID uuid.UUID, qty int) error

	// InsertIfAbsent inserts a quantity-1 row unless the user already
	// owns the item. Used for binary-owned characters.
	InsertIfAbsent(ctx context.Context, userID uuid.UUID, itemType ItemType, itemID uuid.UUID) error

	// SetQuantity overwrites the stack quantity
	SetQuantity(ctx context.Context, id uuid.UUID, qty int) error

	// Delete removes a stack row
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogCache is an optional read-through cache for the read-mostly
// catalog lists. All methods degrade gracefully: a cache error is
// never surfaced to callers.
type CatalogCache interface {
	GetCharacters(ctx context.Context) ([]*Character, bool, error)
	SetCharacters(ctx context.Context, characters []*Character) error
	GetFoods(ctx context.Context) ([]*Food, bool, error)
	SetFoods(ctx context.Context, foods []*Food) error
}

// WalletService is the slice of the wallet engine the shop needs
type WalletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error)
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txType wallet.TransactionType, description string) (*wallet.Wallet, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
