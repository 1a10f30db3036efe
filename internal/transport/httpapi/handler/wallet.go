package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/internal/platform/profile"
	"github.com/saverfox/saverfox/internal/platform/wallet"
	"github.com/saverfox/saverfox/internal/shared/apperr"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
)

// WalletServiceInterface defines the interface for wallet operations
type WalletServiceInterface interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*wallet.Transaction, error)
}

// CurrencyResolverInterface resolves the display currency from the
// user's profile
type CurrencyResolverInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
}

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService  WalletServiceInterface
	profileService CurrencyResolverInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService WalletServiceInterface, profileService CurrencyResolverInterface) *WalletHandler {
	return &WalletHandler{
		walletService:  walletService,
		profileService: profileService,
	}
}

// BalanceResponse represents the wallet balance
type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// TransactionResponse represents one ledger row
type TransactionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"createdAt"`
}

// GetBalance handles GET /wallet
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	wlt, err := h.walletService.GetBalance(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// A missing profile is not an error here, fall back to the default
	currency := profile.DefaultCurrency
	if p, err := h.profileService.Get(r.Context(), userID); err == nil {
		currency = p.Currency
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{
		Balance:  wlt.Balance,
		Currency: currency,
	})
}

// GetHistory handles GET /wallet/history
func (h *WalletHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, r)
		return
	}

	transactions, err := h.walletService.History(r.Context(), userID, limitParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, TransactionResponse{
			ID:          tx.ID.String(),
			Amount:      tx.Amount,
			Type:        string(tx.Type),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, map[string][]TransactionResponse{"transactions": responses})
}

// limitParam parses the optional limit query parameter. Zero means
// service default.
func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
