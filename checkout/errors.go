package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("payment does not cover the total")
	ErrInvalidTender       = errors.New("invalid tender")
	ErrOverpayment         = errors.New("overpayment without cash to give change from")
)
