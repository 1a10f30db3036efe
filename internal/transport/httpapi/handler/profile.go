package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/internal/platform/profile"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// ProfileServiceInterface defines the interface for profile operations
type ProfileServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
	Create(ctx context.Context, userID uuid.UUID, age int, allowance decimal.Decimal, currency string) (*profile.Profile, error)
	ChooseStarterCharacter(ctx context.Context, userID, characterID uuid.UUID) (*profile.OnboardingResult, error)
}

// StarterCatalogInterface lists starter characters and resolves the
// chosen one for the onboarding response
type StarterCatalogInterface interface {
	ListStarterCharacters(ctx context.Context) ([]*shop.Character, error)
	GetCharacter(ctx context.Context, id uuid.UUID) (*shop.Character, error)
}

// ProfileHandler handles profile and onboarding HTTP requests
type ProfileHandler struct {
	profileService ProfileServiceInterface
	catalog        StarterCatalogInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileServiceInterface, catalog StarterCatalogInterface) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		catalog:        catalog,
	}
}

// CreateProfileRequest represents the profile creation request
type CreateProfileRequest struct {
	Age       int             `json:"age"`
	Allowance decimal.Decimal `json:"allowance"`
	Currency  string          `json:"currency"`
}

// ChooseCharacterRequest represents the starter pick request
type ChooseCharacterRequest struct {
	CharacterID string `json:"characterId"`
}

// ProfileResponse represents a profile
type ProfileResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"userId"`
	Age                 int             `json:"age"`
	Allowance           decimal.Decimal `json:"allowance"`
	Currency            string          `json:"currency"`
	OnboardingCompleted bool            `json:"onboardingCompleted"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`
}

// ChooseCharacterResponse represents the onboarding bootstrap result
type ChooseCharacterResponse struct {
	TamagotchiID string            `json:"tamagotchiId"`
	Character    CharacterResponse `json:"character"`
	SeededFoodID string            `json:"seededFoodId"`
	SeededQty    int               `json:"seededQty"`
}

// CreateProfile handles POST /profile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	created, err := h.profileService.Create(r.Context(), userID, req.Age, req.Allowance, req.Currency)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProfileResponse(created))
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	p, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toProfileResponse(p))
}

// GetStarterCharacters handles GET /characters/starter
func (h *ProfileHandler) GetStarterCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.catalog.ListStarterCharacters(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]CharacterResponse{
		"characters": toCharacterResponses(characters),
	})
}

// ChooseCharacter handles POST /characters/choose
func (h *ProfileHandler) ChooseCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req ChooseCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	characterID, err := uuid.Parse(req.CharacterID)
	if err != nil {
		respondBadRequest(w, r, "invalid character ID")
		return
	}

	result, err := h.profileService.ChooseStarterCharacter(r.Context(), userID, characterID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	character, err := h.catalog.GetCharacter(r.Context(), characterID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, ChooseCharacterResponse{
		TamagotchiID: result.TamagotchiID.String(),
		Character:    toCharacterResponse(character),
		SeededFoodID: result.SeededFoodID.String(),
		SeededQty:    result.SeededQty,
	})
}

func toProfileResponse(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                  p.ID.String(),
		UserID:              p.UserID.String(),
		Age:                 p.Age,
		Allowance:           p.Allowance,
		Currency:            p.Currency,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}
