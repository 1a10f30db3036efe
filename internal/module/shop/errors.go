package shop

import "github.com/saverfox/saverfox/internal/shared/apperr"

var (
	ErrInvalidItemType      = apperr.New(apperr.KindValidationFailed, "item type must be 'character' or 'food'")
	ErrItemNotFound         = apperr.NotFound("item")
	ErrItemNotOwned         = apperr.NotFound("inventory item")
	ErrInsufficientQuantity = apperr.New(apperr.KindInsufficientQuantity, "not enough of this item in inventory")
	ErrInvalidQuantity      = apperr.New(apperr.KindValidationFailed, "quantity must be greater than zero")
)
