package mission

import (
	"fmt"
	"sync"
)

// Evaluator computes the completion percentage of one mission type
// from its requirements and the user's progress counters.
//
// New mission types plug in here without touching the mission core.
type Evaluator interface {
	// Type returns the mission type this evaluator handles
	Type() MissionType

	// Percent returns the clamped completion percentage in [0, 100]
	Percent(requirements, progress Counters) int
}

// Registry manages progress evaluators keyed by mission type.
type Registry struct {
	evaluators map[MissionType]Evaluator
	mu         sync.RWMutex
}

// NewRegistry creates an empty evaluator registry.
func NewRegistry() *Registry {
	return &Registry{
		evaluators: make(map[MissionType]Evaluator),
	}
}

// Register registers an evaluator for its mission type.
// Returns an error if the type is unknown or already registered.
func (r *Registry) Register(e Evaluator) error {
	if e == nil {
		return fmt.Errorf("evaluator cannot be nil")
	}
	if !e.Type().IsValid() {
		return fmt.Errorf("invalid mission type: %s", e.Type())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluators[e.Type()]; exists {
		return fmt.Errorf("evaluator for type '%s' already registered", e.Type())
	}
	r.evaluators[e.Type()] = e
	return nil
}

// Percent evaluates the progress percentage for the given mission
// type. An unregistered type evaluates to zero.
func (r *Registry) Percent(t MissionType, requirements, progress Counters) int {
	r.mu.RLock()
	e, ok := r.evaluators[t]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	return e.Percent(requirements, progress)
}

// DefaultRegistry returns a registry with all built-in mission types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Evaluator{
		NewCounterEvaluator(MissionTypeLogExpenses, KeyExpenseCount),
		NewCounterEvaluator(MissionTypeExpenseTracking, KeyExpenseCount),
		NewCounterEvaluator(MissionTypeLogSavings, KeySavingCount),
		NewCounterEvaluator(MissionTypeSavingTracking, KeySavingCount),
		NewCounterEvaluator(MissionTypeTamagotchiCare, KeyFeedCount),
		NewCombinedEvaluator(),
	} {
		// Only fails on duplicate or invalid types, neither of which
		// can happen for the built-in set.
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// clampPct computes min(100, 100*have/need). A non-positive
// requirement evaluates to zero so a misconfigured mission can never
// auto-complete.
func clampPct(have, need int) int {
	if need <= 0 {
		return 0
	}
	pct := 100 * have / need
	if pct > 100 {
		return 100
	}
	return pct
}

// CounterEvaluator handles mission types driven by a single counter.
type CounterEvaluator struct {
	missionType MissionType
	key         string
}

// NewCounterEvaluator creates an evaluator tracking one counter key.
func NewCounterEvaluator(t MissionType, key string) *CounterEvaluator {
	return &CounterEvaluator{missionType: t, key: key}
}

// Type returns the mission type
func (e *CounterEvaluator) Type() MissionType {
	return e.missionType
}

// Percent returns min(100, 100 * progress[key] / requirements[key]).
func (e *CounterEvaluator) Percent(requirements, progress Counters) int {
	return clampPct(progress.Get(e.key), requirements.Get(e.key))
}

// CombinedEvaluator handles the combined expense+saving mission type:
// the average of the two clamped ratios.
type CombinedEvaluator struct{}

// NewCombinedEvaluator creates the combined-mission evaluator.
func NewCombinedEvaluator() *CombinedEvaluator {
	return &CombinedEvaluator{}
}

// Type returns the mission type
func (e *CombinedEvaluator) Type() MissionType {
	return MissionTypeCombined
}

// Percent averages the clamped expense and saving percentages.
func (e *CombinedEvaluator) Percent(requirements, progress Counters) int {
	expensePct := clampPct(progress.Get(KeyExpenseCount), requirements.Get(KeyExpenseCount))
	savingPct := clampPct(progress.Get(KeySavingCount), requirements.Get(KeySavingCount))
	return (expensePct + savingPct) / 2
}
