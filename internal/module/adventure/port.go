package adventure

import (
	"context"

	"github.com/google/uuid"

	"github.com/saverfox/saverfox/internal/infra/gateway/aiservice"
	"github.com/saverfox/saverfox/internal/module/goal"
	"github.com/saverfox/saverfox/internal/module/mission"
	"github.com/saverfox/saverfox/internal/platform/profile"
)

// Repository defines persistence for adventures
type Repository interface {
	// Create inserts a new unsubmitted adventure
	Create(ctx context.Context, a *Adventure) error

	// Get returns the adventure scoped to (id, userID), or nil when
	// absent
	Get(ctx context.Context, id, userID uuid.UUID) (*Adventure, error)

	// List returns the user's adventures, newest first
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*Adventure, error)

	// MarkEvaluated persists the evaluation in one write guarded on
	// the unsubmitted state. Reports whether the row transitioned.
	MarkEvaluated(ctx context.Context, id uuid.UUID, ev *Evaluation) (bool, error)
}

// AIClient is the outbound AI service boundary
type AIClient interface {
	GenerateAdventure(ctx context.Context, req *aiservice.GenerateRequest) (*aiservice.GenerateResponse, error)
	EvaluateChoice(ctx context.Context, req *aiservice.EvaluateRequest) (*aiservice.EvaluateResponse, error)
}

// ProfileService supplies the child's age and allowance for prompts
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
}

// GoalService supplies active goals for the prompt's goal context
type GoalService interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
}

// ActivityService supplies recent activity lines for prompt context
type ActivityService interface {
	RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Activity, error)
}
