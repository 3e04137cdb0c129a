package ledger

import "errors"

var (
	// ErrDuplicateOrderNumber means the generated or supplied number
	// collided with an existing order.
	ErrDuplicateOrderNumber = errors.New("order number already exists")

	// ErrEmptyOrder rejects a checkout with no items.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrUnknownProduct rejects a checkout line whose product id does not
	// resolve to a live product.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrInvalidQuantity rejects a checkout line with quantity < 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
