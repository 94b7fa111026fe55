package order

import "errors"

var (
	// -- Resource State --
	ErrTableNotFound = errors.New("table not found")
	ErrOrderNotFound = errors.New("no open order for table")
	ErrItemNotFound  = errors.New("order item not found")
	ErrEmptyOrder    = errors.New("cannot close an order without items")

	// -- Validation & Input --
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNoteTooLong      = errors.New("item note exceeds the allowed length")
)
