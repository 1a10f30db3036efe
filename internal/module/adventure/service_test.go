package adventure_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saverfox/saverfox/internal/infra/gateway/aiservice"
	"github.com/saverfox/saverfox/internal/module/adventure"
	"github.com/saverfox/saverfox/internal/module/goal"
	"github.com/saverfox/saverfox/internal/module/mission"
	"github.com/saverfox/saverfox/internal/platform/profile"
	"github.com/saverfox/saverfox/internal/shared/apperr"
	"github.com/saverfox/saverfox/pkg/logger"
)

// MockRepository is a mock implementation of adventure.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *adventure.Adventure) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id, userID uuid.UUID) (*adventure.Adventure, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adventure.Adventure), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]*adventure.Adventure, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*adventure.Adventure), args.Error(1)
}

func (m *MockRepository) MarkEvaluated(ctx context.Context, id uuid.UUID, ev *adventure.Evaluation) (bool, error) {
	args := m.Called(ctx, id, ev)
	return args.Bool(0), args.Error(1)
}

// MockAI is a mock implementation of adventure.AIClient
type MockAI struct {
	mock.Mock
}

func (m *MockAI) GenerateAdventure(ctx context.Context, req *aiservice.GenerateRequest) (*aiservice.GenerateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aiservice.GenerateResponse), args.Error(1)
}

func (m *MockAI) EvaluateChoice(ctx context.Context, req *aiservice.EvaluateRequest) (*aiservice.EvaluateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aiservice.EvaluateResponse), args.Error(1)
}

// MockProfiles is a mock implementation of adventure.ProfileService
type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

// MockGoals is a mock implementation of adventure.GoalService
type MockGoals struct {
	mock.Mock
}

func (m *MockGoals) ListActive(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*goal.Goal), args.Error(1)
}

// MockActivities is a mock implementation of adventure.ActivityService
type MockActivities struct {
	mock.Mock
}

func (m *MockActivities) RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mission.Activity), args.Error(1)
}

func testLogger() *logger.Logger {
	return logger.New("test", io.Discard)
}

func childProfile(userID uuid.UUID) *profile.Profile {
	return &profile.Profile{
		UserID:    userID,
		Age:       10,
		Allowance: decimal.NewFromInt(50),
		Currency:  "IDR",
	}
}

func unsubmitted(userID uuid.UUID) *adventure.Adventure {
	return &adventure.Adventure{
		ID:                uuid.New(),
		UserID:            userID,
		Scenario:          "You found 5000 rupiah on the ground! What do you do?",
		Choices:           []string{"Save it", "Spend it on candy", "Share it"},
		GenerationTraceID: "trace_gen",
	}
}

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	profiles := new(MockProfiles)
	profiles.On("Get", ctx, userID).Return(childProfile(userID), nil)

	goals := new(MockGoals)
	goals.On("ListActive", ctx, userID).Return([]*goal.Goal{
		{Title: "New bicycle", CurrentAmount: decimal.NewFromInt(100), TargetAmount: decimal.NewFromInt(500)},
	}, nil)

	activities := new(MockActivities)
	activities.On("RecentActivities", ctx, userID, 5).Return([]*mission.Activity{
		{Kind: mission.ActivityExpense, Label: "snack", Amount: decimal.NewFromInt(5)},
		{Kind: mission.ActivitySaving, Label: "allowance", Amount: decimal.NewFromInt(10)},
	}, nil)

	ai := new(MockAI)
	ai.On("GenerateAdventure", ctx, mock.MatchedBy(func(req *aiservice.GenerateRequest) bool {
		return req.UserAge == 10 &&
			req.Allowance == 50 &&
			req.GoalContext == "New bicycle (100/500); pretend play" &&
			len(req.RecentActivities) == 2 &&
			req.RecentActivities[0] == "Logged expense: snack 5" &&
			req.RecentActivities[1] == "Logged saving: allowance 10"
	})).Return(&aiservice.GenerateResponse{
		Scenario:    "A scenario",
		Choices:     []string{"a", "b"},
		OpikTraceID: "trace_gen",
	}, nil)

	repo := new(MockRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*adventure.Adventure")).Return(nil)

	svc := adventure.NewService(repo, ai, profiles, goals, activities, testLogger())
	a, err := svc.Generate(ctx, userID, "pretend play")

	require.NoError(t, err)
	assert.Equal(t, "trace_gen", a.GenerationTraceID)
	assert.Nil(t, a.SelectedChoiceIndex)
	assert.Len(t, a.Choices, 2)
	ai.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_Generate_NoProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	profiles := new(MockProfiles)
	profiles.On("Get", ctx, userID).Return(nil, profile.ErrNotFound)

	svc := adventure.NewService(new(MockRepository), new(MockAI), profiles, new(MockGoals), new(MockActivities), testLogger())
	_, err := svc.Generate(ctx, userID, "")
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestService_SubmitChoice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	evaluation := &aiservice.EvaluateResponse{
		Feedback: "Pilihan yang bagus!",
		Scores: map[string]float64{
			"age_appropriateness": 0.9,
			"goal_alignment":      0.95,
			"financial_reasoning": 0.85,
			"creativity":          0.7,
		},
		OpikTraceID: "trace_eval",
	}

	t.Run("evaluates and persists once", func(t *testing.T) {
		a := unsubmitted(userID)
		repo := new(MockRepository)
		repo.On("Get", ctx, a.ID, userID).Return(a, nil)
		repo.On("MarkEvaluated", ctx, a.ID, mock.AnythingOfType("*adventure.Evaluation")).Return(true, nil)

		profiles := new(MockProfiles)
		profiles.On("Get", ctx, userID).Return(childProfile(userID), nil)

		ai := new(MockAI)
		ai.On("EvaluateChoice", ctx, mock.MatchedBy(func(req *aiservice.EvaluateRequest) bool {
			return req.ChoiceIndex == 0 && req.ChoiceText == "Save it" && req.UserAge == 10
		})).Return(evaluation, nil)

		svc := adventure.NewService(repo, ai, profiles, new(MockGoals), new(MockActivities), testLogger())
		result, err := svc.SubmitChoice(ctx, userID, a.ID, 0)

		require.NoError(t, err)
		require.NotNil(t, result.SelectedChoiceIndex)
		assert.Equal(t, 0, *result.SelectedChoiceIndex)
		assert.Equal(t, "Pilihan yang bagus!", result.Feedback)
		assert.Equal(t, "trace_eval", result.EvaluationTraceID)
		assert.InDelta(t, 0.95, result.Scores["goal_alignment"], 0.0001)
		assert.InDelta(t, 0.7, result.Scores["creativity"], 0.0001, "extra metrics are kept as-is")
		require.NotNil(t, result.EvaluatedAt)
	})

	t.Run("already submitted", func(t *testing.T) {
		a := unsubmitted(userID)
		idx := 1
		a.SelectedChoiceIndex = &idx

		repo := new(MockRepository)
		repo.On("Get", ctx, a.ID, userID).Return(a, nil)

		svc := adventure.NewService(repo, new(MockAI), new(MockProfiles), new(MockGoals), new(MockActivities), testLogger())
		_, err := svc.SubmitChoice(ctx, userID, a.ID, 0)
		assert.ErrorIs(t, err, adventure.ErrAlreadySubmitted)
	})

	t.Run("choice index out of range", func(t *testing.T) {
		a := unsubmitted(userID)
		repo := new(MockRepository)
		repo.On("Get", ctx, a.ID, userID).Return(a, nil)

		svc := adventure.NewService(repo, new(MockAI), new(MockProfiles), new(MockGoals), new(MockActivities), testLogger())

		_, err := svc.SubmitChoice(ctx, userID, a.ID, 3)
		assert.ErrorIs(t, err, adventure.ErrInvalidChoice)

		_, err = svc.SubmitChoice(ctx, userID, a.ID, -1)
		assert.ErrorIs(t, err, adventure.ErrInvalidChoice)
	})

	t.Run("AI failure leaves adventure unsubmitted", func(t *testing.T) {
		a := unsubmitted(userID)
		repo := new(MockRepository)
		repo.On("Get", ctx, a.ID, userID).Return(a, nil)

		profiles := new(MockProfiles)
		profiles.On("Get", ctx, userID).Return(childProfile(userID), nil)

		ai := new(MockAI)
		ai.On("EvaluateChoice", ctx, mock.Anything).Return(nil, apperr.ServiceUnavailable("AI service is unavailable", nil))

		svc := adventure.NewService(repo, ai, profiles, new(MockGoals), new(MockActivities), testLogger())
		_, err := svc.SubmitChoice(ctx, userID, a.ID, 0)

		assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
		repo.AssertNotCalled(t, "MarkEvaluated", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent submission loses to first writer", func(t *testing.T) {
		a := unsubmitted(userID)
		repo := new(MockRepository)
		repo.On("Get", ctx, a.ID, userID).Return(a, nil)
		repo.On("MarkEvaluated", ctx, a.ID, mock.AnythingOfType("*adventure.Evaluation")).Return(false, nil)

		profiles := new(MockProfiles)
		profiles.On("Get", ctx, userID).Return(childProfile(userID), nil)

		ai := new(MockAI)
		ai.On("EvaluateChoice", ctx, mock.Anything).Return(evaluation, nil)

		svc := adventure.NewService(repo, ai, profiles, new(MockGoals), new(MockActivities), testLogger())
		_, err := svc.SubmitChoice(ctx, userID, a.ID, 0)
		assert.ErrorIs(t, err, adventure.ErrAlreadySubmitted)
	})

	t.Run("not found", func(t *testing.T) {
		adventureID := uuid.New()
		repo := new(MockRepository)
		repo.On("Get", ctx, adventureID, userID).Return(nil, nil)

		svc := adventure.NewService(repo, new(MockAI), new(MockProfiles), new(MockGoals), new(MockActivities), testLogger())
		_, err := svc.SubmitChoice(ctx, userID, adventureID, 0)
		assert.ErrorIs(t, err, adventure.ErrNotFound)
	})
}

func TestService_History_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockRepository)
	repo.On("List", ctx, userID, 50).Return([]*adventure.Adventure{}, nil)

	svc := adventure.NewService(repo, new(MockAI), new(MockProfiles), new(MockGoals), new(MockActivities), testLogger())
	_, err := svc.History(ctx, userID, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
