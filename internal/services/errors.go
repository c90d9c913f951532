package services

import "errors"

// Failure kinds surfaced to front ends. Anything a service returns that
// does not match one of these is a storage failure.
var (
	ErrItemNotFound  = errors.New("menu_item_not_found")
	ErrOrderNotFound = errors.New("order_not_found")
	ErrEmptyOrder    = errors.New("empty_order")
	ErrInvalidInput  = errors.New("invalid_input")
)
