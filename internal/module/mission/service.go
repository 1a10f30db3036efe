package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/wallet"
	"github.com/saverfox/saverfox/internal/shared/apperr"
	"github.com/saverfox/saverfox/pkg/logger"
	"github.com/saverfox/saverfox/pkg/money"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

// Service provides the mission engine: today's mission, activity
// logging with transactional progress updates, and the exactly-once
// reward credit on completion.
type Service struct {
	repo    Repository
	wallets WalletService
	evals   *Registry
	cache   DailyCache
	tx      TxManager
	log     *logger.Logger
}

// NewService creates a new mission service. evals defaults to the
// built-in registry when nil; cache may be nil.
func NewService(repo Repository, wallets WalletService, evals *Registry, cache DailyCache, tx TxManager, log *logger.Logger) *Service {
	if evals == nil {
		evals = DefaultRegistry()
	}
	return &Service{
		repo:    repo,
		wallets: wallets,
		evals:   evals,
		cache:   cache,
		tx:      tx,
		log:     log.WithField("component", "mission"),
	}
}

// todayUTC returns midnight of the current UTC day. Mission selection
// is always by UTC day, never the server's local calendar.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// activeMission returns today's mission, or nil when none is
// scheduled.
func (s *Service) activeMission(ctx context.Context) (*Mission, error) {
	day := todayUTC()

	if s.cache != nil {
		if m, ok, err := s.cache.GetDaily(ctx, day); err == nil && ok {
			return m, nil
		} else if err != nil {
			s.log.Warn("daily mission cache read failed", "error", err)
		}
	}

	m, err := s.repo.GetByActiveDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load active mission: %w", err)
	}

	if m != nil && s.cache != nil {
		if err := s.cache.SetDaily(ctx, day, m); err != nil {
			s.log.Warn("daily mission cache write failed", "error", err)
		}
	}
	return m, nil
}

// TodaysMission returns today's mission together with the user's
// progress row, creating the row on first fetch.
func (s *Service) TodaysMission(ctx context.Context, userID uuid.UUID) (*MissionStatus, error) {
	m, err := s.activeMission(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNoActiveMission
	}

	um, err := s.repo.GetOrCreateUserMission(ctx, userID, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user mission: %w", err)
	}

	pct := 100
	if !um.Completed {
		pct = s.evals.Percent(m.MissionType, m.Requirements, um.Progress)
	}

	return &MissionStatus{Mission: m, UserMission: um, ProgressPct: pct}, nil
}

// LogExpense appends an expense row and advances today's mission in
// the same transaction. Logging never fails for an absent mission; the
// result then reports zero progress.
func (s *Service) LogExpense(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, category, description string) (*ExpenseLogResult, error) {
	if !money.IsValid(amount) {
		return nil, ErrInvalidAmount
	}
	if category == "" {
		return nil, apperr.Validation("validation failed", apperr.FieldError{Field: "category", Message: "category is required"})
	}

	result := &ExpenseLogResult{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		expense := &Expense{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      amount,
			Category:    category,
			Description: description,
			LoggedAt:    time.Now().UTC(),
		}
		if err := s.repo.InsertExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		result.Expense = expense

		pct, completed, err := s.advanceProgress(ctx, userID, KeyExpenseCount)
		if err != nil {
			return err
		}
		result.MissionProgress = pct
		result.MissionCompleted = completed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LogSaving appends a saving row and advances today's mission in the
// same transaction.
func (s *Service) LogSaving(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source string) (*SavingLogResult, error) {
	if !money.IsValid(amount) {
		return nil, ErrInvalidAmount
	}

	result := &SavingLogResult{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		saving := &Saving{
			ID:       uuid.New(),
			UserID:   userID,
			Amount:   amount,
			Source:   source,
			LoggedAt: time.Now().UTC(),
		}
		if err := s.repo.InsertSaving(ctx, saving); err != nil {
			return fmt.Errorf("failed to insert saving: %w", err)
		}
		result.Saving = saving

		pct, completed, err := s.advanceProgress(ctx, userID, KeySavingCount)
		if err != nil {
			return err
		}
		result.MissionProgress = pct
		result.MissionCompleted = completed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordFeed advances a tamagotchi_care mission after a feed event.
// It must run inside the feed's transaction; the caller provides the
// transactional context. Feeds under any other mission type are a
// no-op.
func (s *Service) RecordFeed(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	m, err := s.activeMission(ctx)
	if err != nil {
		return 0, false, err
	}
	if m == nil || m.MissionType != MissionTypeTamagotchiCare {
		return 0, false, nil
	}
	return s.advance(ctx, userID, m, KeyFeedCount)
}

// advanceProgress increments a progress counter on today's mission,
// returning (0, false) when no mission is scheduled.
func (s *Service) advanceProgress(ctx context.Context, userID uuid.UUID, key string) (int, bool, error) {
	m, err := s.activeMission(ctx)
	if err != nil {
		return 0, false, err
	}
	if m == nil {
		return 0, false, nil
	}
	return s.advance(ctx, userID, m, key)
}

// advance is the completion state machine: bump the counter, evaluate
// the percentage and, exactly once, flip completed and credit the
// reward inside the ambient transaction.
func (s *Service) advance(ctx context.Context, userID uuid.UUID, m *Mission, key string) (int, bool, error) {
	um, err := s.repo.GetOrCreateUserMissionForUpdate(ctx, userID, m.ID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to lock user mission: %w", err)
	}

	// Completed is monotonic: repeat logs leave the record unchanged
	// and never credit again.
	if um.Completed {
		return 100, true, nil
	}

	um.Progress = um.Progress.Inc(key)
	pct := s.evals.Percent(m.MissionType, m.Requirements, um.Progress)

	if pct >= 100 {
		now := time.Now().UTC()
		um.Completed = true
		um.CompletedAt = &now
	}

	if err := s.repo.UpdateUserMission(ctx, um); err != nil {
		return 0, false, fmt.Errorf("failed to update user mission: %w", err)
	}

	if um.Completed && m.RewardCoins.IsPositive() {
		description := fmt.Sprintf("Completed mission: %s", m.Title)
		if _, err := s.wallets.Credit(ctx, userID, m.RewardCoins, wallet.TxTypeMissionReward, description); err != nil {
			return 0, false, err
		}
		s.log.Info("mission completed", "user_id", userID, "mission_id", m.ID, "reward", m.RewardCoins)
	}

	return pct, um.Completed, nil
}

// ExpenseHistory returns the user's expenses, newest first.
func (s *Service) ExpenseHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, userID, clampLimit(limit))
}

// SavingHistory returns the user's savings, newest first.
func (s *Service) SavingHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*Saving, error) {
	return s.repo.ListSavings(ctx, userID, clampLimit(limit))
}

// RecentActivities returns the user's newest activity rows across
// expenses and savings, newest first.
func (s *Service) RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*Activity, error) {
	return s.repo.ListRecentActivities(ctx, userID, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxHistoryLimit {
		return defaultHistoryLimit
	}
	return limit
}
