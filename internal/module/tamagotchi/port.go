package tamagotchi

import (
	"context"

	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/module/shop"
)

// Repository defines persistence for tamagotchis
type Repository interface {
	// GetByUserID returns the user's pet, or nil when none exists
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Tamagotchi, error)

	// GetByUserIDForUpdate is GetByUserID with a row-level lock for
	// the surrounding transaction
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*Tamagotchi, error)

	// Create inserts a new pet. Fails on the one-pet-per-user
	// constraint when one already exists.
	Create(ctx context.Context, t *Tamagotchi) error

	// Update persists stats, name and last_fed_at
	Update(ctx context.Context, t *Tamagotchi) error
}

// ShopService is the slice of the shop engine feeding needs
type ShopService interface {
	GetFood(ctx context.Context, id uuid.UUID) (*shop.Food, error)
	UserOwns(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType shop.ItemType) (bool, error)
	ConsumeItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType shop.ItemType, qty int) error
}

// MissionService advances tamagotchi_care missions on feed events
type MissionService interface {
	RecordFeed(ctx context.Context, userID uuid.UUID) (int, bool, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
