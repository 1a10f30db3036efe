package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/pkg/logger"
	"github.com/saverfox/saverfox/pkg/money"
)

// starterFoodQty is the number of units of the cheapest food seeded
// into a fresh inventory during onboarding.
const starterFoodQty = 10

// Service provides profile creation and the starter-character
// onboarding bootstrap.
type Service struct {
	repo        Repository
	shop        ShopService
	tamagotchis TamagotchiService
	tx          TxManager
	log         *logger.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, shopSvc ShopService, tamagotchis TamagotchiService, tx TxManager, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		shop:        shopSvc,
		tamagotchis: tamagotchis,
		tx:          tx,
		log:         log.WithField("component", "profile"),
	}
}

// Get returns the user's profile.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Create inserts the user's profile. One per user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, age int, allowance decimal.Decimal, currency string) (*Profile, error) {
	if age < 5 || age > 18 {
		return nil, ErrInvalidAge
	}
	if !money.IsValid(allowance) {
		return nil, ErrInvalidAllowance
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	currency = strings.ToUpper(currency)
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Age:       age,
		Allowance: allowance,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.log.Info("profile created", "user_id", userID, "age", age)
	return p, nil
}

// ChooseStarterCharacter completes onboarding in one transaction:
// adopt the starter character as the pet, seed the starting
// inventory and flip onboarding_completed.
func (s *Service) ChooseStarterCharacter(ctx context.Context, userID, characterID uuid.UUID) (*OnboardingResult, error) {
	var result *OnboardingResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if p == nil {
			return ErrNotFound
		}

		character, err := s.shop.GetCharacter(ctx, characterID)
		if err != nil {
			return err
		}
		if !character.IsStarter {
			return ErrNotStarter
		}

		pet, err := s.tamagotchis.Adopt(ctx, userID, characterID, character.Name)
		if err != nil {
			return err
		}

		if err := s.shop.GrantItem(ctx, userID, characterID, shop.ItemTypeCharacter, 1); err != nil {
			return err
		}

		res := &OnboardingResult{Profile: p, TamagotchiID: pet.ID}

		// Cheapest food first: the catalog lists by price ascending.
		foods, err := s.shop.ListFoods(ctx)
		if err != nil {
			return err
		}
		if len(foods) > 0 {
			if err := s.shop.GrantItem(ctx, userID, foods[0].ID, shop.ItemTypeFood, starterFoodQty); err != nil {
				return err
			}
			res.SeededFoodID = foods[0].ID
			res.SeededQty = starterFoodQty
		}

		p.OnboardingCompleted = true
		p.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("onboarding completed", "user_id", userID, "character_id", characterID)
	return result, nil
}
