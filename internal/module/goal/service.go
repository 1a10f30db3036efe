package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
	"github.com/saverfox/saverfox/pkg/logger"
	"github.com/saverfox/saverfox/pkg/money"
)

// Service provides the goal engine: CRUD plus the transactional
// progress update with its one-time completion bonus.
type Service struct {
	repo    Repository
	wallets WalletService
	tx      TxManager
	log     *logger.Logger
}

// NewService creates a new goal service.
func NewService(repo Repository, wallets WalletService, tx TxManager, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		wallets: wallets,
		tx:      tx,
		log:     log.WithField("component", "goal"),
	}
}

// Create starts a new savings goal.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, title string, targetAmount decimal.Decimal, description string) (*Goal, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if !money.IsValid(targetAmount) {
		return nil, ErrInvalidTarget
	}

	now := time.Now().UTC()
	g := &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Description:   description,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.log.Info("goal created", "user_id", userID, "goal_id", g.ID, "target", targetAmount)
	return g, nil
}

// Get returns one goal scoped to the user.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*Goal, error) {
	g, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

// List returns all of the user's goals, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.List(ctx, userID, nil)
}

// ListActive returns the user's incomplete goals.
func (s *Service) ListActive(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	completed := false
	return s.repo.List(ctx, userID, &completed)
}

// ListCompleted returns the user's completed goals.
func (s *Service) ListCompleted(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	completed := true
	return s.repo.List(ctx, userID, &completed)
}

// AddProgress adds amount to the goal inside one transaction. When
// the target is reached, completed flips once and the bonus
// floor(target * 0.1) is credited, skipped when it floors to zero.
func (s *Service) AddProgress(ctx context.Context, goalID, userID uuid.UUID, amount decimal.Decimal) (*ProgressResult, error) {
	if !money.IsValid(amount) {
		return nil, ErrInvalidAmount
	}

	var result *ProgressResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := s.repo.GetForUpdate(ctx, goalID, userID)
		if err != nil {
			return fmt.Errorf("failed to lock goal: %w", err)
		}
		if g == nil {
			return ErrNotFound
		}
		if g.Completed {
			return ErrAlreadyCompleted
		}

		now := time.Now().UTC()
		g.CurrentAmount = g.CurrentAmount.Add(amount)
		g.UpdatedAt = now

		res := &ProgressResult{Goal: g}
		if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
			g.Completed = true
			g.CompletedAt = &now

			if bonus := g.Bonus(); bonus.IsPositive() {
				description := fmt.Sprintf("Completed goal: %s", g.Title)
				if _, err := s.wallets.Credit(ctx, userID, bonus, wallet.TxTypeGoalBonus, description); err != nil {
					return err
				}
				res.BonusAwarded = &bonus
			}
		}

		if err := s.repo.Update(ctx, g); err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		res.ProgressPct = g.ProgressPct()
		res.Completed = g.Completed
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Completed {
		s.log.Info("goal completed", "user_id", userID, "goal_id", goalID)
	}
	return result, nil
}

// Delete removes the user's goal.
func (s *Service) Delete(ctx context.Context, goalID, userID uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
