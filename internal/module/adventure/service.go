package adventure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/infra/gateway/aiservice"
	"github.com/saverfox/saverfox/internal/module/mission"
	"github.com/saverfox/saverfox/pkg/logger"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100

	goalContextLimit    = 3
	recentActivityLimit = 5
)

// Service orchestrates AI adventures: generation with prompt context
// and the one-shot choice evaluation.
type Service struct {
	repo       Repository
	ai         AIClient
	profiles   ProfileService
	goals      GoalService
	activities ActivityService
	log        *logger.Logger
}

// NewService creates a new adventure service.
func NewService(repo Repository, ai AIClient, profiles ProfileService, goals GoalService, activities ActivityService, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		ai:         ai,
		profiles:   profiles,
		goals:      goals,
		activities: activities,
		log:        log.WithField("component", "adventure"),
	}
}

// Generate creates a new adventure for the user. Each call produces a
// fresh scenario; nothing about generation is idempotent.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, extraContext string) (*Adventure, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	allowance, _ := p.Allowance.Float64()
	req := &aiservice.GenerateRequest{
		UserAge:          p.Age,
		Allowance:        allowance,
		GoalContext:      s.goalContext(ctx, userID, extraContext),
		RecentActivities: s.recentActivities(ctx, userID),
	}

	resp, err := s.ai.GenerateAdventure(ctx, req)
	if err != nil {
		return nil, err
	}

	a := &Adventure{
		ID:                uuid.New(),
		UserID:            userID,
		Scenario:          resp.Scenario,
		Choices:           resp.Choices,
		GenerationTraceID: resp.OpikTraceID,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to persist adventure: %w", err)
	}

	s.log.Info("adventure generated", "user_id", userID, "adventure_id", a.ID, "trace_id", a.GenerationTraceID)
	return a, nil
}

// goalContext builds a textual summary of the user's most recent
// incomplete goals, concatenated with any caller-supplied context.
// Context is best-effort: a read failure degrades to the caller's
// text alone.
func (s *Service) goalContext(ctx context.Context, userID uuid.UUID, extra string) string {
	var parts []string

	goals, err := s.goals.ListActive(ctx, userID)
	if err != nil {
		s.log.Warn("failed to load goals for prompt context", "error", err)
	} else {
		if len(goals) > goalContextLimit {
			goals = goals[:goalContextLimit]
		}
		for _, g := range goals {
			parts = append(parts, fmt.Sprintf("%s (%s/%s)", g.Title, g.CurrentAmount, g.TargetAmount))
		}
	}

	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, "; ")
}

// recentActivities formats the user's newest activity rows as prompt
// lines. Best-effort like goalContext.
func (s *Service) recentActivities(ctx context.Context, userID uuid.UUID) []string {
	activities, err := s.activities.RecentActivities(ctx, userID, recentActivityLimit)
	if err != nil {
		s.log.Warn("failed to load activities for prompt context", "error", err)
		return nil
	}

	lines := make([]string, 0, len(activities))
	for _, act := range activities {
		switch act.Kind {
		case mission.ActivitySaving:
			lines = append(lines, fmt.Sprintf("Logged saving: %s %s", act.Label, act.Amount))
		default:
			lines = append(lines, fmt.Sprintf("Logged expense: %s %s", act.Label, act.Amount))
		}
	}
	return lines
}

// SubmitChoice evaluates the user's choice and persists the result in
// one guarded write. When the AI call succeeds but persistence races
// with another submission, the first writer wins.
func (s *Service) SubmitChoice(ctx context.Context, userID, adventureID uuid.UUID, choiceIndex int) (*Adventure, error) {
	a, err := s.repo.Get(ctx, adventureID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adventure: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	if a.Submitted() {
		return nil, ErrAlreadySubmitted
	}
	if choiceIndex < 0 || choiceIndex >= len(a.Choices) {
		return nil, ErrInvalidChoice
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := s.ai.EvaluateChoice(ctx, &aiservice.EvaluateRequest{
		Scenario:    a.Scenario,
		ChoiceIndex: choiceIndex,
		ChoiceText:  a.Choices[choiceIndex],
		UserAge:     p.Age,
	})
	if err != nil {
		// The adventure stays unsubmitted; the client may retry.
		return nil, err
	}

	scores := resp.Scores
	if scores == nil {
		scores = map[string]float64{}
	}
	ev := &Evaluation{
		ChoiceIndex: choiceIndex,
		Feedback:    resp.Feedback,
		Scores:      scores,
		TraceID:     resp.OpikTraceID,
		EvaluatedAt: time.Now().UTC(),
	}

	transitioned, err := s.repo.MarkEvaluated(ctx, a.ID, ev)
	if err != nil {
		return nil, fmt.Errorf("failed to persist evaluation: %w", err)
	}
	if !transitioned {
		return nil, ErrAlreadySubmitted
	}

	a.SelectedChoiceIndex = &ev.ChoiceIndex
	a.Feedback = ev.Feedback
	a.Scores = ev.Scores
	a.EvaluationTraceID = ev.TraceID
	a.EvaluatedAt = &ev.EvaluatedAt

	s.log.Info("adventure evaluated", "user_id", userID, "adventure_id", a.ID, "trace_id", ev.TraceID)
	return a, nil
}

// Get returns one adventure scoped to the user.
func (s *Service) Get(ctx context.Context, userID, adventureID uuid.UUID) (*Adventure, error) {
	a, err := s.repo.Get(ctx, adventureID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adventure: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// History returns the user's adventures, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]*Adventure, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	return s.repo.List(ctx, userID, limit)
}
