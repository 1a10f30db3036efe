package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/internal/module/tamagotchi"
)

// Repository defines persistence for profiles
type Repository interface {
	// Create inserts a new profile
	Create(ctx context.Context, p *Profile) error

	// GetByUserID returns the user's profile, or nil when absent
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// Update persists allowance, currency and onboarding_completed
	Update(ctx context.Context, p *Profile) error
}

// ShopService is the slice of the shop engine onboarding needs
type ShopService interface {
	GetCharacter(ctx context.Context, id uuid.UUID) (*shop.Character, error)
	ListFoods(ctx context.Context) ([]*shop.Food, error)
	GrantItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType shop.ItemType, qty int) error
}

// TamagotchiService creates the pet during onboarding
type TamagotchiService interface {
	Adopt(ctx context.Context, userID, characterID uuid.UUID, name string) (*tamagotchi.Tamagotchi, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
