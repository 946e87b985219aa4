package domain

import "errors"

// Sentinel errors for caller-input validation. Every rejection
// happens before any book mutation. Cancelling an unknown order is a
// routine outcome reported as a boolean, never one of these.
var (
	ErrInvalidOrderID   = errors.New("invalid_order_id")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrDuplicateOrderID = errors.New("duplicate_order_id")
	ErrNoLiquidity      = errors.New("no_liquidity")
)
