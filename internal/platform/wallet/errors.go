package wallet

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrInvalidAmount     = apperr.New(apperr.KindInvalidAmount, "amount must be positive with at most two decimal places")
	ErrInvalidType       = apperr.New(apperr.KindValidationFailed, "unknown transaction type")
	ErrInsufficientFunds = apperr.New(apperr.KindInsufficientFunds, "insufficient funds")
	ErrWalletNotFound    = apperr.NotFound("wallet")
)
