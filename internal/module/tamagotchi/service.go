package tamagotchi

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/pkg/logger"
)

// Service provides the tamagotchi engine: pet state, the feed
// transaction and renaming.
type Service struct {
	repo     Repository
	shop     ShopService
	missions MissionService
	tx       TxManager
	log      *logger.Logger
}

// NewService creates a new tamagotchi service.
func NewService(repo Repository, shopSvc ShopService, missions MissionService, tx TxManager, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		shop:     shopSvc,
		missions: missions,
		tx:       tx,
		log:      log.WithField("component", "tamagotchi"),
	}
}

// Get returns the user's pet.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Tamagotchi, error) {
	pet, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tamagotchi: %w", err)
	}
	if pet == nil {
		return nil, ErrNotFound
	}
	return pet, nil
}

// Adopt creates the user's pet from a chosen character. Stats start
// at hunger 50, happiness 50, health 100 and the pet has never been
// fed. One pet per user.
func (s *Service) Adopt(ctx context.Context, userID, characterID uuid.UUID, name string) (*Tamagotchi, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tamagotchi: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	pet := &Tamagotchi{
		ID:          uuid.New(),
		UserID:      userID,
		CharacterID: characterID,
		Name:        name,
		Hunger:      50,
		Happiness:   50,
		Health:      100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create tamagotchi: %w", err)
	}

	s.log.Info("tamagotchi adopted", "user_id", userID, "character_id", characterID)
	return pet, nil
}

// Feed feeds the pet one unit of the given food inside a single
// transaction: stats update, food consumption and the mission
// progress all commit or roll back together.
func (s *Service) Feed(ctx context.Context, userID, foodID uuid.UUID) (*FeedResult, error) {
	var result *FeedResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		pet, err := s.repo.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock tamagotchi: %w", err)
		}
		if pet == nil {
			return ErrNotFound
		}

		food, err := s.shop.GetFood(ctx, foodID)
		if err != nil {
			return err
		}

		owns, err := s.shop.UserOwns(ctx, userID, foodID, shop.ItemTypeFood)
		if err != nil {
			return err
		}
		if !owns {
			return ErrFoodNotOwned
		}

		pet.applyFeed(food.NutritionValue, time.Now().UTC())
		if err := s.repo.Update(ctx, pet); err != nil {
			return fmt.Errorf("failed to update tamagotchi: %w", err)
		}

		if err := s.shop.ConsumeItem(ctx, userID, foodID, shop.ItemTypeFood, 1); err != nil {
			return err
		}

		pct, completed, err := s.missions.RecordFeed(ctx, userID)
		if err != nil {
			return err
		}

		result = &FeedResult{
			Tamagotchi:       pet,
			MissionProgress:  pct,
			MissionCompleted: completed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tamagotchi fed", "user_id", userID, "food_id", foodID,
		"hunger", result.Tamagotchi.Hunger, "happiness", result.Tamagotchi.Happiness, "health", result.Tamagotchi.Health)
	return result, nil
}

// Rename changes the pet's display name.
func (s *Service) Rename(ctx context.Context, userID uuid.UUID, name string) (*Tamagotchi, error) {
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return nil, ErrInvalidName
	}

	pet, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	pet.Name = name
	pet.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to rename tamagotchi: %w", err)
	}
	return pet, nil
}
