package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// ShopServiceInterface defines the interface for shop operations
type ShopServiceInterface interface {
	ListCharacters(ctx context.Context) ([]*shop.Character, error)
	ListStarterCharacters(ctx context.Context) ([]*shop.Character, error)
	ListFoods(ctx context.Context) ([]*shop.Food, error)
	GetInventory(ctx context.Context, userID uuid.UUID) ([]*shop.InventoryItem, error)
	Purchase(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, itemType shop.ItemType) (*shop.PurchaseResult, error)
}

// ShopHandler handles shop-related HTTP requests
type ShopHandler struct {
	shopService ShopServiceInterface
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService ShopServiceInterface) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// CharacterResponse represents a catalog character
type CharacterResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	IsStarter bool            `json:"isStarter"`
	Price     decimal.Decimal `json:"price"`
}

// FoodResponse represents a catalog food
type FoodResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	NutritionValue int             `json:"nutritionValue"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"imageUrl"`
}

// InventoryItemResponse represents one owned stack
type InventoryItemResponse struct {
	ID         string `json:"id"`
	ItemType   string `json:"itemType"`
	ItemID     string `json:"itemId"`
	Quantity   int    `json:"quantity"`
	AcquiredAt string `json:"acquiredAt"`
}

// PurchaseRequest represents the purchase request body
type PurchaseRequest struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
}

// PurchasedItem represents the item in a purchase response
type PurchasedItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	ItemType string          `json:"itemType"`
	Price    decimal.Decimal `json:"price"`
}

// PurchaseResponse represents the purchase response
type PurchaseResponse struct {
	Success    bool            `json:"success"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Item       PurchasedItem   `json:"item"`
}

// GetCharacters handles GET /shop/characters
func (h *ShopHandler) GetCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.shopService.ListCharacters(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]CharacterResponse{
		"characters": toCharacterResponses(characters),
	})
}

// GetFoods handles GET /shop/foods
func (h *ShopHandler) GetFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.shopService.ListFoods(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]FoodResponse, 0, len(foods))
	for _, f := range foods {
		responses = append(responses, toFoodResponse(f))
	}

	respondJSON(w, http.StatusOK, map[string][]FoodResponse{"foods": responses})
}

// GetInventory handles GET /shop/inventory
func (h *ShopHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	items, err := h.shopService.GetInventory(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]InventoryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, InventoryItemResponse{
			ID:         item.ID.String(),
			ItemType:   string(item.ItemType),
			ItemID:     item.ItemID.String(),
			Quantity:   item.Quantity,
			AcquiredAt: item.AcquiredAt.Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, map[string][]InventoryItemResponse{"inventory": responses})
}

// Buy handles POST /shop/buy
func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		respondBadRequest(w, r, "invalid item ID")
		return
	}

	result, err := h.shopService.Purchase(r.Context(), userID, itemID, shop.ItemType(req.ItemType))
	if err != nil {
		respondError(w, r, err)
		return
	}

	item := PurchasedItem{ItemType: string(result.ItemType), Name: result.ItemName()}
	switch {
	case result.Character != nil:
		item.ID = result.Character.ID.String()
		item.Price = result.Character.Price
	case result.Food != nil:
		item.ID = result.Food.ID.String()
		item.Price = result.Food.Price
	}

	respondJSON(w, http.StatusOK, PurchaseResponse{
		Success:    true,
		NewBalance: result.NewBalance,
		Item:       item,
	})
}

func toCharacterResponse(c *shop.Character) CharacterResponse {
	return CharacterResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		IsStarter: c.IsStarter,
		Price:     c.Price,
	}
}

func toCharacterResponses(characters []*shop.Character) []CharacterResponse {
	responses := make([]CharacterResponse, 0, len(characters))
	for _, c := range characters {
		responses = append(responses, toCharacterResponse(c))
	}
	return responses
}

func toFoodResponse(f *shop.Food) FoodResponse {
	return FoodResponse{
		ID:             f.ID.String(),
		Name:           f.Name,
		NutritionValue: f.NutritionValue,
		Price:          f.Price,
		ImageURL:       f.ImageURL,
	}
}
