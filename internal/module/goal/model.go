package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saverfox/saverfox/pkg/money"
)

// bonusRate is the fraction of the target credited when a goal
// completes, floored to whole coins.
var bonusRate = decimal.NewFromFloat(0.1)

// Goal is a savings goal. Completed is monotonic and flips at most
// once, crediting the completion bonus in the same transaction.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Completed     bool            `json:"completed"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProgressPct returns min(100, 100 * current / target) as an integer.
func (g *Goal) ProgressPct() int {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct := g.CurrentAmount.Mul(decimal.NewFromInt(100)).Div(g.TargetAmount).IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// Bonus returns the completion bonus: floor(target * 0.1).
func (g *Goal) Bonus() decimal.Decimal {
	return money.FloorBonus(g.TargetAmount, bonusRate)
}

// ProgressResult reports the outcome of adding to a goal.
type ProgressResult struct {
	Goal         *Goal            `json:"goal"`
	ProgressPct  int              `json:"progress_pct"`
	Completed    bool             `json:"completed"`
	BonusAwarded *decimal.Decimal `json:"bonus_awarded,omitempty"`
}
