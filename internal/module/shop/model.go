package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemType discriminates the two purchasable item kinds. Characters
// are binary-owned; foods stack.
type ItemType string

const (
	ItemTypeCharacter ItemType = "character"
	ItemTypeFood      ItemType = "food"
)

// IsValid checks if the item type is known
func (t ItemType) IsValid() bool {
	return t == ItemTypeCharacter || t == ItemTypeFood
}

// Character is a catalog entity a player can adopt as a pet.
type Character struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	IsStarter bool            `json:"is_starter"`
	Price     decimal.Decimal `json:"price"`
}

// Food is a catalog entity consumed by feeding the pet.
type Food struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	NutritionValue int             `json:"nutrition_value"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url"`
}

// InventoryItem is one owned stack. At most one row exists per
// (user, item type, item); quantity zero rows are deleted eagerly.
type InventoryItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ItemType   ItemType  `json:"item_type"`
	ItemID     uuid.UUID `json:"item_id"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// PurchaseResult reports the outcome of a successful purchase.
type PurchaseResult struct {
	NewBalance decimal.Decimal `json:"new_balance"`
	ItemType   ItemType        `json:"item_type"`
	Character  *Character      `json:"character,omitempty"`
	Food       *Food           `json:"food,omitempty"`
}

// ItemName returns the purchased item's display name.
func (r *PurchaseResult) ItemName() string {
	if r.Character != nil {
		return r.Character.Name
	}
	if r.Food != nil {
		return r.Food.Name
	}
	return ""
}
