package mission

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrNoActiveMission = apperr.New(apperr.KindNoActiveMission, "no mission scheduled for today")
	ErrInvalidAmount   = apperr.New(apperr.KindInvalidAmount, "amount must be positive with at most two decimal places")
	ErrMissionNotFound = apperr.NotFound("mission")
)
