package mission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MissionType is the tag that selects how a mission's progress is
// evaluated. "expense_tracking"/"saving_tracking" are legacy aliases
// kept for seeded catalog rows.
type MissionType string

const (
	MissionTypeLogExpenses     MissionType = "log_expenses"
	MissionTypeExpenseTracking MissionType = "expense_tracking"
	MissionTypeLogSavings      MissionType = "log_savings"
	MissionTypeSavingTracking  MissionType = "saving_tracking"
	MissionTypeCombined        MissionType = "combined"
	MissionTypeTamagotchiCare  MissionType = "tamagotchi_care"
)

// IsValid checks if the mission type is known
func (t MissionType) IsValid() bool {
	switch t {
	case MissionTypeLogExpenses, MissionTypeExpenseTracking,
		MissionTypeLogSavings, MissionTypeSavingTracking,
		MissionTypeCombined, MissionTypeTamagotchiCare:
		return true
	}
	return false
}

// Counter keys shared between mission requirements and user progress.
const (
	KeyExpenseCount = "expense_count"
	KeySavingCount  = "saving_count"
	KeyFeedCount    = "feed_count"
)

// Counters is the tag-keyed counter map stored as JSONB on both the
// mission (requirements) and the user mission (progress).
type Counters map[string]int

// Get returns the counter value, zero when the key is absent.
func (c Counters) Get(key string) int {
	if c == nil {
		return 0
	}
	return c[key]
}

// Inc bumps a counter by one and returns the updated map, allocating
// when the receiver is nil.
func (c Counters) Inc(key string) Counters {
	if c == nil {
		c = make(Counters, 1)
	}
	c[key]++
	return c
}

// Mission is a catalog row. Exactly one mission is active per UTC day.
type Mission struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	MissionType  MissionType     `json:"mission_type"`
	Requirements Counters        `json:"requirements"`
	RewardCoins  decimal.Decimal `json:"reward_coins"`
	ActiveDate   time.Time       `json:"active_date"`
}

// UserMission tracks one user's progress against one mission. Created
// lazily on first fetch; completed is monotonic and flips at most once.
type UserMission struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	MissionID   uuid.UUID  `json:"mission_id"`
	Progress    Counters   `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Expense is one logged spending entry.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	LoggedAt    time.Time       `json:"logged_at"`
}

// Saving is one logged saving entry.
type Saving struct {
	ID       uuid.UUID       `json:"id"`
	UserID   uuid.UUID       `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Source   string          `json:"source,omitempty"`
	LoggedAt time.Time       `json:"logged_at"`
}

// ActivityKind discriminates merged activity rows.
type ActivityKind string

const (
	ActivityExpense ActivityKind = "expense"
	ActivitySaving  ActivityKind = "saving"
)

// Activity is a merged view over expenses and savings, newest first.
// Label carries the expense category or the saving source.
type Activity struct {
	Kind     ActivityKind    `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Label    string          `json:"label"`
	LoggedAt time.Time       `json:"logged_at"`
}

// MissionStatus is the read model for today's mission.
type MissionStatus struct {
	Mission     *Mission     `json:"mission"`
	UserMission *UserMission `json:"user_mission"`
	ProgressPct int          `json:"progress_pct"`
}

// ExpenseLogResult reports a logged expense and its mission effect.
type ExpenseLogResult struct {
	Expense          *Expense `json:"expense"`
	MissionProgress  int      `json:"mission_progress"`
	MissionCompleted bool     `json:"mission_completed"`
}

// SavingLogResult reports a logged saving and its mission effect.
type SavingLogResult struct {
	Saving           *Saving `json:"saving"`
	MissionProgress  int     `json:"mission_progress"`
	MissionCompleted bool    `json:"mission_completed"`
}
