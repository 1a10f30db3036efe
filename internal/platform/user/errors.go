package user

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrInvalidUsername    = apperr.Validation("validation failed", apperr.FieldError{Field: "username", Message: "username must be 3-50 characters"})
	ErrInvalidEmail       = apperr.Validation("validation failed", apperr.FieldError{Field: "email", Message: "email address is invalid"})
	ErrPasswordTooShort   = apperr.Validation("validation failed", apperr.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	ErrUserNotFound       = apperr.NotFound("user")
	ErrUserAlreadyExists  = apperr.Conflict("username or email is already taken")
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")
)
