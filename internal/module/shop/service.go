package shop

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
	"github.com/saverfox/saverfox/pkg/logger"
)

// Service provides the shop engine: catalog reads, inventory and the
// purchase transaction.
type Service struct {
	catalog   CatalogRepository
	inventory InventoryRepository
	wallets   WalletService
	cache     CatalogCache
	tx        TxManager
	log       *logger.Logger
}

// NewService creates a new shop service. cache may be nil.
func NewService(catalog CatalogRepository, inventory InventoryRepository, wallets WalletService, cache CatalogCache, tx TxManager, log *logger.Logger) *Service {
	return &Service{
		catalog:   catalog,
		inventory: inventory,
		wallets:   wallets,
		cache:     cache,
		tx:        tx,
		log:       log.WithField("component", "shop"),
	}
}

// ListCharacters returns the character catalog, price asc then name.
func (s *Service) ListCharacters(ctx context.Context) ([]*Character, error) {
	if s.cache != nil {
		if characters, ok, err := s.cache.GetCharacters(ctx); err == nil && ok {
			return characters, nil
		} else if err != nil {
			s.log.Warn("catalog cache read failed", "error", err)
		}
	}

	characters, err := s.catalog.ListCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetCharacters(ctx, characters); err != nil {
			s.log.Warn("catalog cache write failed", "error", err)
		}
	}
	return characters, nil
}

// ListStarterCharacters returns the characters eligible for onboarding.
func (s *Service) ListStarterCharacters(ctx context.Context) ([]*Character, error) {
	characters, err := s.catalog.ListStarterCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list starter characters: %w", err)
	}
	return characters, nil
}

// ListFoods returns the food catalog, price asc then name.
func (s *Service) ListFoods(ctx context.Context) ([]*Food, error) {
	if s.cache != nil {
		if foods, ok, err := s.cache.GetFoods(ctx); err == nil && ok {
			return foods, nil
		} else if err != nil {
			s.log.Warn("catalog cache read failed", "error", err)
		}
	}

	foods, err := s.catalog.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetFoods(ctx, foods); err != nil {
			s.log.Warn("catalog cache write failed", "error", err)
		}
	}
	return foods, nil
}

// GetFood returns one food by ID.
func (s *Service) GetFood(ctx context.Context, id uuid.UUID) (*Food, error) {
	return s.catalog.GetFood(ctx, id)
}

// GetCharacter returns one character by ID.
func (s *Service) GetCharacter(ctx context.Context, id uuid.UUID) (*Character, error) {
	return s.catalog.GetCharacter(ctx, id)
}

// GetInventory returns the user's inventory rows.
func (s *Service) GetInventory(ctx context.Context, userID uuid.UUID) ([]*InventoryItem, error) {
	items, err := s.inventory.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// UserOwns reports whether the user owns at least one of the item.
func (s *Service) UserOwns(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType ItemType) (bool, error) {
	item, err := s.inventory.Get(ctx, userID, itemType, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return item != nil && item.Quantity > 0, nil
}

// Purchase debits the item's price from the user's wallet and adds
// the item to their inventory, all in one transaction. Foods stack;
// buying an already-owned character is a paid no-op on inventory.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType ItemType) (*PurchaseResult, error) {
	if !itemType.IsValid() {
		return nil, ErrInvalidItemType
	}

	var result *PurchaseResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		res := &PurchaseResult{ItemType: itemType}

		switch itemType {
		case ItemTypeCharacter:
			character, err := s.catalog.GetCharacter(ctx, itemID)
			if err != nil {
				return err
			}
			res.Character = character
		case ItemTypeFood:
			food, err := s.catalog.GetFood(ctx, itemID)
			if err != nil {
				return err
			}
			res.Food = food
		}

		price := decimal.Zero
		if res.Character != nil {
			price = res.Character.Price
		} else if res.Food != nil {
			price = res.Food.Price
		}

		if price.IsPositive() {
			// The debit joins this transaction via the context, so it
			// is undone if the inventory write below fails.
			description := fmt.Sprintf("Bought %s", res.ItemName())
			w, err := s.wallets.Debit(ctx, userID, price, wallet.TxTypeShopPurchase, description)
			if err != nil {
				return err
			}
			res.NewBalance = w.Balance
		} else {
			// Free catalog items (starter characters) take nothing from
			// the wallet and leave no ledger row.
			w, err := s.wallets.GetBalance(ctx, userID)
			if err != nil {
				return err
			}
			res.NewBalance = w.Balance
		}

		switch itemType {
		case ItemTypeCharacter:
			if err := s.inventory.InsertIfAbsent(ctx, userID, itemType, itemID); err != nil {
				return fmt.Errorf("failed to add character to inventory: %w", err)
			}
		case ItemTypeFood:
			if err := s.inventory.AddQuantity(ctx, userID, itemType, itemID, 1); err != nil {
				return fmt.Errorf("failed to add food to inventory: %w", err)
			}
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("purchase completed", "user_id", userID, "item_type", itemType, "item_id", itemID)
	return result, nil
}

// GrantItem adds an item to the user's inventory without payment.
// Used to seed starting inventory during onboarding.
func (s *Service) GrantItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType ItemType, qty int) error {
	if !itemType.IsValid() {
		return ErrInvalidItemType
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	switch itemType {
	case ItemTypeCharacter:
		if err := s.inventory.InsertIfAbsent(ctx, userID, itemType, itemID); err != nil {
			return fmt.Errorf("failed to grant character: %w", err)
		}
	case ItemTypeFood:
		if err := s.inventory.AddQuantity(ctx, userID, itemType, itemID, qty); err != nil {
			return fmt.Errorf("failed to grant food: %w", err)
		}
	}
	return nil
}

// ConsumeItem removes qty units of an item from the user's inventory.
// The stack row is deleted when its quantity reaches zero.
func (s *Service) ConsumeItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType ItemType, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		item, err := s.inventory.GetForUpdate(ctx, userID, itemType, itemID)
		if err != nil {
			return fmt.Errorf("failed to load inventory row: %w", err)
		}
		if item == nil {
			return ErrItemNotOwned
		}
		if item.Quantity < qty {
			return ErrInsufficientQuantity
		}

		remaining := item.Quantity - qty
		if remaining == 0 {
			if err := s.inventory.Delete(ctx, item.ID); err != nil {
				return fmt.Errorf("failed to delete empty stack: %w", err)
			}
			return nil
		}
		if err := s.inventory.SetQuantity(ctx, item.ID, remaining); err != nil {
			return fmt.Errorf("failed to decrement stack: %w", err)
		}
		return nil
	})
}
