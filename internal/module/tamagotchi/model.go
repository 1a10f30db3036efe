package tamagotchi

import (
	"time"

	"github.com/google/uuid"
)

// Stat bounds and feed tuning. Health regenerates only while the pet
// is well fed.
const (
	StatMin = 0
	StatMax = 100

	hungerComfortThreshold = 30
	healthRegenPerFeed     = 5
)

// Tamagotchi is a user's virtual pet. One per user; stats are kept in
// [0, 100] by the feed math and the schema checks.
type Tamagotchi struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CharacterID uuid.UUID  `json:"character_id"`
	Name        string     `json:"name"`
	Hunger      int        `json:"hunger"`
	Happiness   int        `json:"happiness"`
	Health      int        `json:"health"`
	LastFedAt   *time.Time `json:"last_fed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// applyFeed mutates the stats for one feeding with nutrition n.
func (t *Tamagotchi) applyFeed(n int, now time.Time) {
	t.Hunger = clampStat(t.Hunger - n)
	t.Happiness = clampStat(t.Happiness + n/2)
	if t.Hunger < hungerComfortThreshold {
		t.Health = clampStat(t.Health + healthRegenPerFeed)
	}
	t.LastFedAt = &now
	t.UpdatedAt = now
}

func clampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// FeedResult reports the pet's stats after a feeding and the effect
// on today's mission.
type FeedResult struct {
	Tamagotchi       *Tamagotchi `json:"tamagotchi"`
	MissionProgress  int         `json:"mission_progress"`
	MissionCompleted bool        `json:"mission_completed"`
}
