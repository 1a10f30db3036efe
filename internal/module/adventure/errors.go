package adventure

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrNotFound         = apperr.NotFound("adventure")
	ErrAlreadySubmitted = apperr.New(apperr.KindAlreadySubmitted, "a choice has already been submitted for this adventure")
	ErrInvalidChoice    = apperr.New(apperr.KindInvalidChoice, "choice index is out of range")
)
