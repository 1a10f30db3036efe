package goal

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrNotFound         = apperr.NotFound("goal")
	ErrAlreadyCompleted = apperr.New(apperr.KindAlreadyCompleted, "goal is already completed")
	ErrInvalidAmount    = apperr.New(apperr.KindInvalidAmount, "amount must be positive with at most two decimal places")
	ErrInvalidTarget    = apperr.Validation("validation failed", apperr.FieldError{Field: "target_amount", Message: "target amount must be positive with at most two decimal places"})
	ErrInvalidTitle     = apperr.Validation("validation failed", apperr.FieldError{Field: "title", Message: "title is required"})
)
