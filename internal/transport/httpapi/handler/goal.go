package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/module/goal"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// GoalServiceInterface defines the interface for goal operations
type GoalServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, title string, targetAmount decimal.Decimal, description string) (*goal.Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
	ListCompleted(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
	AddProgress(ctx context.Context, goalID, userID uuid.UUID, amount decimal.Decimal) (*goal.ProgressResult, error)
	Delete(ctx context.Context, goalID, userID uuid.UUID) error
}

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalService GoalServiceInterface
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService GoalServiceInterface) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the goal creation request
type CreateGoalRequest struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Description  string          `json:"description"`
}

// GoalProgressRequest represents the progress request
type GoalProgressRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoalResponse represents a goal
type GoalResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	ProgressPct   int             `json:"progressPct"`
	Completed     bool            `json:"completed"`
	CompletedAt   *string         `json:"completedAt,omitempty"`
	CreatedAt     string          `json:"createdAt"`
}

// GoalProgressResponse represents the progress result
type GoalProgressResponse struct {
	Goal         GoalResponse     `json:"goal"`
	ProgressPct  int              `json:"progressPct"`
	Completed    bool             `json:"completed"`
	BonusAwarded *decimal.Decimal `json:"bonusAwarded,omitempty"`
}

// CreateGoal handles POST /goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	created, err := h.goalService.Create(r.Context(), userID, req.Title, req.TargetAmount, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toGoalResponse(created))
}

// GetGoals handles GET /goals
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	h.listGoals(w, r, h.goalService.List)
}

// GetActiveGoals handles GET /goals/active
func (h *GoalHandler) GetActiveGoals(w http.ResponseWriter, r *http.Request) {
	h.listGoals(w, r, h.goalService.ListActive)
}

// GetCompletedGoals handles GET /goals/completed
func (h *GoalHandler) GetCompletedGoals(w http.ResponseWriter, r *http.Request) {
	h.listGoals(w, r, h.goalService.ListCompleted)
}

func (h *GoalHandler) listGoals(w http.ResponseWriter, r *http.Request, list func(context.Context, uuid.UUID) ([]*goal.Goal, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	goals, err := list(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, toGoalResponse(g))
	}

	respondJSON(w, http.StatusOK, map[string][]GoalResponse{"goals": responses})
}

// AddProgress handles POST /goals/{id}/progress
func (h *GoalHandler) AddProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "invalid goal ID")
		return
	}

	var req GoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	result, err := h.goalService.AddProgress(r.Context(), goalID, userID, req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, GoalProgressResponse{
		Goal:         toGoalResponse(result.Goal),
		ProgressPct:  result.ProgressPct,
		Completed:    result.Completed,
		BonusAwarded: result.BonusAwarded,
	})
}

// DeleteGoal handles DELETE /goals/{id}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "invalid goal ID")
		return
	}

	if err := h.goalService.Delete(r.Context(), goalID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toGoalResponse(g *goal.Goal) GoalResponse {
	resp := GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		ProgressPct:   g.ProgressPct(),
		Completed:     g.Completed,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
	if g.CompletedAt != nil {
		completedAt := g.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}
	return resp
}
