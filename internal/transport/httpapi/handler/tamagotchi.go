package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/module/tamagotchi"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// TamagotchiServiceInterface defines the interface for pet operations
type TamagotchiServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*tamagotchi.Tamagotchi, error)
	Feed(ctx context.Context, userID, foodID uuid.UUID) (*tamagotchi.FeedResult, error)
	Rename(ctx context.Context, userID uuid.UUID, name string) (*tamagotchi.Tamagotchi, error)
}

// TamagotchiHandler handles tamagotchi HTTP requests
type TamagotchiHandler struct {
	tamagotchiService TamagotchiServiceInterface
}

// NewTamagotchiHandler creates a new tamagotchi handler
func NewTamagotchiHandler(tamagotchiService TamagotchiServiceInterface) *TamagotchiHandler {
	return &TamagotchiHandler{tamagotchiService: tamagotchiService}
}

// FeedRequest represents the feed request body
type FeedRequest struct {
	FoodID string `json:"foodId"`
}

// RenameRequest represents the rename request body
type RenameRequest struct {
	Name string `json:"name"`
}

// TamagotchiResponse represents the pet state
type TamagotchiResponse struct {
	ID          string  `json:"id"`
	CharacterID string  `json:"characterId"`
	Name        string  `json:"name"`
	Hunger      int     `json:"hunger"`
	Happiness   int     `json:"happiness"`
	Health      int     `json:"health"`
	LastFedAt   *string `json:"lastFedAt,omitempty"`
}

// FeedResponse represents the feed result
type FeedResponse struct {
	Tamagotchi       TamagotchiResponse `json:"tamagotchi"`
	MissionProgress  int                `json:"missionProgress"`
	MissionCompleted bool               `json:"missionCompleted"`
}

// GetTamagotchi handles GET /tamagotchi
func (h *TamagotchiHandler) GetTamagotchi(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	pet, err := h.tamagotchiService.Get(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toTamagotchiResponse(pet))
}

// Feed handles POST /tamagotchi/feed
func (h *TamagotchiHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	foodID, err := uuid.Parse(req.FoodID)
	if err != nil {
		respondBadRequest(w, r, "invalid food ID")
		return
	}

	result, err := h.tamagotchiService.Feed(r.Context(), userID, foodID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, FeedResponse{
		Tamagotchi:       toTamagotchiResponse(result.Tamagotchi),
		MissionProgress:  result.MissionProgress,
		MissionCompleted: result.MissionCompleted,
	})
}

// Rename handles PATCH /tamagotchi
func (h *TamagotchiHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	pet, err := h.tamagotchiService.Rename(r.Context(), userID, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toTamagotchiResponse(pet))
}

func toTamagotchiResponse(t *tamagotchi.Tamagotchi) TamagotchiResponse {
	resp := TamagotchiResponse{
		ID:          t.ID.String(),
		CharacterID: t.CharacterID.String(),
		Name:        t.Name,
		Hunger:      t.Hunger,
		Happiness:   t.Happiness,
		Health:      t.Health,
	}
	if t.LastFedAt != nil {
		lastFedAt := t.LastFedAt.Format(time.RFC3339)
		resp.LastFedAt = &lastFedAt
	}
	return resp
}
