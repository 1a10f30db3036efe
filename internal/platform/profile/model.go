package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when profile creation omits the currency.
const DefaultCurrency = "IDR"

// Profile holds the child's game profile. One per user; age and
// allowance feed the AI adventure prompts.
type Profile struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	Age                 int             `json:"age"`
	Allowance           decimal.Decimal `json:"allowance"`
	Currency            string          `json:"currency"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// OnboardingResult reports the starter-character bootstrap.
type OnboardingResult struct {
	Profile      *Profile  `json:"profile"`
	TamagotchiID uuid.UUID `json:"tamagotchi_id"`
	SeededFoodID uuid.UUID `json:"seeded_food_id"`
	SeededQty    int       `json:"seeded_qty"`
}
