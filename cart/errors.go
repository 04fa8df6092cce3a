package cart

import "errors"

var (
	// ErrInvalidDiscount rejects a line or cart discount that is negative or
	// larger than the amount it applies to. The cart is left unchanged.
	ErrInvalidDiscount = errors.New("invalid discount")
	// ErrInvalidQuantity rejects an add with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrOutOfStock rejects an add for a product with no available stock.
	ErrOutOfStock = errors.New("product out of stock")
)
