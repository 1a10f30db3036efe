package tamagotchi

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrNotFound      = apperr.NotFound("tamagotchi")
	ErrFoodNotOwned  = apperr.Forbidden("you do not own this food")
	ErrAlreadyExists = apperr.Conflict("user already has a tamagotchi")
	ErrInvalidName   = apperr.Validation("validation failed", apperr.FieldError{Field: "name", Message: "name must be 1-100 characters"})
)
