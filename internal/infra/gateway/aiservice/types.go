package aiservice

// GenerateRequest asks the AI service for a new money-adventure
// scenario tailored to the child.
type GenerateRequest struct {
	UserAge          int      `json:"user_age"`
	Allowance        float64  `json:"allowance"`
	GoalContext      string   `json:"goal_context,omitempty"`
	RecentActivities []string `json:"recent_activities,omitempty"`
}

// GenerateResponse carries the generated scenario. The AI service
// guarantees at least two choices.
type GenerateResponse struct {
	Scenario    string   `json:"scenario"`
	Choices     []string `json:"choices"`
	OpikTraceID string   `json:"opik_trace_id"`
}

// EvaluateRequest asks for feedback and scores on a selected choice.
type EvaluateRequest struct {
	Scenario    string             `json:"scenario"`
	ChoiceIndex int                `json:"choice_index"`
	ChoiceText  string             `json:"choice_text"`
	UserAge     int                `json:"user_age"`
	Amounts     map[string]float64 `json:"amounts,omitempty"`
}

// EvaluateResponse carries the AI's feedback on a choice. Scores is a
// free-form metric map, each value in [0, 1]; metrics the AI adds
// later pass through untouched.
type EvaluateResponse struct {
	Feedback    string             `json:"feedback"`
	Scores      map[string]float64 `json:"scores"`
	OpikTraceID string             `json:"opik_trace_id"`
}
