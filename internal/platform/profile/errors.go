package profile

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrNotFound         = apperr.NotFound("profile")
	ErrAlreadyExists    = apperr.Conflict("profile already exists")
	ErrInvalidAge       = apperr.Validation("validation failed", apperr.FieldError{Field: "age", Message: "age must be between 5 and 18"})
	ErrInvalidAllowance = apperr.Validation("validation failed", apperr.FieldError{Field: "allowance", Message: "allowance must be positive with at most two decimal places"})
	ErrInvalidCurrency  = apperr.Validation("validation failed", apperr.FieldError{Field: "currency", Message: "currency must be a 3-letter code"})
	ErrNotStarter       = apperr.New(apperr.KindInvalidStarter, "character is not a starter character")
)
