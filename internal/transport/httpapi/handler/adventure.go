package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/module/adventure"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// AdventureServiceInterface defines the interface for adventure operations
type AdventureServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, extraContext string) (*adventure.Adventure, error)
	SubmitChoice(ctx context.Context, userID, adventureID uuid.UUID, choiceIndex int) (*adventure.Adventure, error)
	Get(ctx context.Context, userID, adventureID uuid.UUID) (*adventure.Adventure, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*adventure.Adventure, error)
}

// AdventureHandler handles adventure HTTP requests
type AdventureHandler struct {
	adventureService AdventureServiceInterface
}

// NewAdventureHandler creates a new adventure handler
func NewAdventureHandler(adventureService AdventureServiceInterface) *AdventureHandler {
	return &AdventureHandler{adventureService: adventureService}
}

// GenerateAdventureRequest represents the generate request body
type GenerateAdventureRequest struct {
	Context string `json:"context"`
}

// SubmitChoiceRequest represents the choice submission body
type SubmitChoiceRequest struct {
	AdventureID string `json:"adventureId"`
	ChoiceIndex int    `json:"choiceIndex"`
}

// AdventureResponse represents an adventure
type AdventureResponse struct {
	ID                  string             `json:"id"`
	Scenario            string             `json:"scenario"`
	Choices             []string           `json:"choices"`
	SelectedChoiceIndex *int               `json:"selectedChoiceIndex,omitempty"`
	Feedback            string             `json:"feedback,omitempty"`
	Scores              map[string]float64 `json:"scores,omitempty"`
	GenerationTraceID   string             `json:"generationTraceId"`
	EvaluationTraceID   string             `json:"evaluationTraceId,omitempty"`
	CreatedAt           string             `json:"createdAt"`
	EvaluatedAt         *string            `json:"evaluatedAt,omitempty"`
}

// Generate handles POST /adventure/generate
func (h *AdventureHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	// Body is optional; an empty object generates from profile context
	var req GenerateAdventureRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	a, err := h.adventureService.Generate(r.Context(), userID, req.Context)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toAdventureResponse(a))
}

// SubmitChoice handles POST /adventure/submit-choice
func (h *AdventureHandler) SubmitChoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req SubmitChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	adventureID, err := uuid.Parse(req.AdventureID)
	if err != nil {
		respondBadRequest(w, r, "invalid adventure ID")
		return
	}

	a, err := h.adventureService.SubmitChoice(r.Context(), userID, adventureID, req.ChoiceIndex)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toAdventureResponse(a))
}

// GetAdventure handles GET /adventure/{id}
func (h *AdventureHandler) GetAdventure(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	adventureID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, r, "invalid adventure ID")
		return
	}

	a, err := h.adventureService.Get(r.Context(), userID, adventureID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toAdventureResponse(a))
}

// GetHistory handles GET /adventure
func (h *AdventureHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	adventures, err := h.adventureService.History(r.Context(), userID, limitParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]AdventureResponse, 0, len(adventures))
	for _, a := range adventures {
		responses = append(responses, toAdventureResponse(a))
	}

	respondJSON(w, http.StatusOK, map[string][]AdventureResponse{"adventures": responses})
}

func toAdventureResponse(a *adventure.Adventure) AdventureResponse {
	resp := AdventureResponse{
		ID:                  a.ID.String(),
		Scenario:            a.Scenario,
		Choices:             a.Choices,
		SelectedChoiceIndex: a.SelectedChoiceIndex,
		Feedback:            a.Feedback,
		Scores:              a.Scores,
		GenerationTraceID:   a.GenerationTraceID,
		EvaluationTraceID:   a.EvaluationTraceID,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
	}
	if a.EvaluatedAt != nil {
		evaluatedAt := a.EvaluatedAt.Format(time.RFC3339)
		resp.EvaluatedAt = &evaluatedAt
	}
	return resp
}
