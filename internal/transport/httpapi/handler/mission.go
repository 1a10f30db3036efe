package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/module/mission"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// MissionServiceInterface defines the interface for mission operations
type MissionServiceInterface interface {
	TodaysMission(ctx context.Context, userID uuid.UUID) (*mission.MissionStatus, error)
	LogExpense(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, category, description string) (*mission.ExpenseLogResult, error)
	LogSaving(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source string) (*mission.SavingLogResult, error)
	ExpenseHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Expense, error)
	SavingHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Saving, error)
}

// MissionHandler handles mission-related HTTP requests
type MissionHandler struct {
	missionService MissionServiceInterface
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(missionService MissionServiceInterface) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// LogExpenseRequest represents the expense logging request
type LogExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// LogSavingRequest represents the saving logging request
type LogSavingRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source"`
}

// MissionResponse represents the mission definition
type MissionResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	MissionType string          `json:"missionType"`
	RewardCoins decimal.Decimal `json:"rewardCoins"`
	ActiveDate  string          `json:"activeDate"`
}

// TodaysMissionResponse represents today's mission with progress
type TodaysMissionResponse struct {
	Mission     MissionResponse `json:"mission"`
	ProgressPct int             `json:"progressPct"`
	Completed   bool            `json:"completed"`
	CompletedAt *string         `json:"completedAt,omitempty"`
}

// ExpenseResponse represents one logged expense
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	LoggedAt    string          `json:"loggedAt"`
}

// SavingResponse represents one logged saving
type SavingResponse struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Source   string          `json:"source,omitempty"`
	LoggedAt string          `json:"loggedAt"`
}

// LogExpenseResponse represents the expense logging result
type LogExpenseResponse struct {
	Logged           bool            `json:"logged"`
	Expense          ExpenseResponse `json:"expense"`
	MissionProgress  int             `json:"missionProgress"`
	MissionCompleted bool            `json:"missionCompleted"`
}

// LogSavingResponse represents the saving logging result
type LogSavingResponse struct {
	Logged           bool           `json:"logged"`
	Saving           SavingResponse `json:"saving"`
	MissionProgress  int            `json:"missionProgress"`
	MissionCompleted bool           `json:"missionCompleted"`
}

// GetToday handles GET /missions/today
func (h *MissionHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	status, err := h.missionService.TodaysMission(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := TodaysMissionResponse{
		Mission:     toMissionResponse(status.Mission),
		ProgressPct: status.ProgressPct,
		Completed:   status.UserMission.Completed,
	}
	if status.UserMission.CompletedAt != nil {
		completedAt := status.UserMission.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}

	respondJSON(w, http.StatusOK, resp)
}

// LogExpense handles POST /missions/log-expense
func (h *MissionHandler) LogExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req LogExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	result, err := h.missionService.LogExpense(r.Context(), userID, req.Amount, req.Category, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LogExpenseResponse{
		Logged:           true,
		Expense:          toExpenseResponse(result.Expense),
		MissionProgress:  result.MissionProgress,
		MissionCompleted: result.MissionCompleted,
	})
}

// LogSaving handles POST /missions/log-saving
func (h *MissionHandler) LogSaving(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req LogSavingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	result, err := h.missionService.LogSaving(r.Context(), userID, req.Amount, req.Source)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LogSavingResponse{
		Logged:           true,
		Saving:           toSavingResponse(result.Saving),
		MissionProgress:  result.MissionProgress,
		MissionCompleted: result.MissionCompleted,
	})
}

// GetExpenses handles GET /missions/expenses
func (h *MissionHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	expenses, err := h.missionService.ExpenseHistory(r.Context(), userID, limitParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, toExpenseResponse(e))
	}

	respondJSON(w, http.StatusOK, map[string][]ExpenseResponse{"expenses": responses})
}

// GetSavings handles GET /missions/savings
func (h *MissionHandler) GetSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	savings, err := h.missionService.SavingHistory(r.Context(), userID, limitParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]SavingResponse, 0, len(savings))
	for _, s := range savings {
		responses = append(responses, toSavingResponse(s))
	}

	respondJSON(w, http.StatusOK, map[string][]SavingResponse{"savings": responses})
}

func toMissionResponse(m *mission.Mission) MissionResponse {
	return MissionResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		MissionType: string(m.MissionType),
		RewardCoins: m.RewardCoins,
		ActiveDate:  m.ActiveDate.Format("2006-01-02"),
	}
}

func toExpenseResponse(e *mission.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		LoggedAt:    e.LoggedAt.Format(time.RFC3339),
	}
}

func toSavingResponse(s *mission.Saving) SavingResponse {
	return SavingResponse{
		ID:       s.ID.String(),
		Amount:   s.Amount,
		Source:   s.Source,
		LoggedAt: s.LoggedAt.Format(time.RFC3339),
	}
}
