package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger row with the domain event that
// produced it.
type TransactionType string

const (
	TxTypeMissionReward TransactionType = "mission_reward"
	TxTypeGoalBonus     TransactionType = "goal_bonus"
	TxTypeShopPurchase  TransactionType = "shop_purchase"
	TxTypeManualCredit  TransactionType = "manual_credit"
	TxTypeManualDebit   TransactionType = "manual_debit"
)

// IsValid checks if the transaction type is known
func (t TransactionType) IsValid() bool {
	switch t {
	case TxTypeMissionReward, TxTypeGoalBonus, TxTypeShopPurchase,
		TxTypeManualCredit, TxTypeManualDebit:
		return true
	}
	return false
}

// Wallet holds a user's coin balance. One wallet per user, created
// lazily on first read or credit.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transaction is one append-only ledger row. Amount is signed:
// positive for credits, negative for debits. The sum of a wallet's
// transaction amounts equals its balance.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"transaction_type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
