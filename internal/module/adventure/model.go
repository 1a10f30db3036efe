package adventure

import (
	"time"

	"github.com/google/uuid"
)

// Adventure is one AI-generated money-adventure. It moves through a
// two-phase state machine: unsubmitted after Generate, evaluated
// after a successful SubmitChoice. Evaluated is terminal.
type Adventure struct {
	ID                  uuid.UUID          `json:"id"`
	UserID              uuid.UUID          `json:"user_id"`
	Scenario            string             `json:"scenario"`
	Choices             []string           `json:"choices"`
	SelectedChoiceIndex *int               `json:"selected_choice_index,omitempty"`
	Feedback            string             `json:"feedback,omitempty"`
	Scores              map[string]float64 `json:"scores,omitempty"`
	GenerationTraceID   string             `json:"generation_trace_id"`
	EvaluationTraceID   string             `json:"evaluation_trace_id,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	EvaluatedAt         *time.Time         `json:"evaluated_at,omitempty"`
}

// Submitted reports whether a choice has been evaluated.
func (a *Adventure) Submitted() bool {
	return a.SelectedChoiceIndex != nil
}

// Evaluation is the write-once payload persisted by SubmitChoice.
type Evaluation struct {
	ChoiceIndex int
	Feedback    string
	Scores      map[string]float64
	TraceID     string
	EvaluatedAt time.Time
}
