package cart

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Totals are derived from a cart on every read and never stored.
type Totals struct {
	Subtotal           int64 `json:"subtotal"`
	LineDiscount       int64 `json:"lineDiscount"`
	CartDiscount       int64 `json:"cartDiscount"`
	Discount           int64 `json:"discount"`
	DiscountedSubtotal int64 `json:"discountedSubtotal"`
	Tax                int64 `json:"tax"`
	Total              int64 `json:"total"`
	ItemCount          int   `json:"itemCount"`
}

// Totals folds the current lines, the cart discount and the tax rate into
// order totals:
//
//	subtotal           = sum(unit price * quantity)
//	discountedSubtotal = subtotal - line discounts - cart discount (>= 0)
//	tax                = round(discountedSubtotal * taxRate / 100)
//	total              = discountedSubtotal + tax
func (c *Cart) Totals() Totals {
	return computeTotals(c.items, c.cartDiscount, c.taxRate, c.logger)
}

func computeTotals(items []LineItem, cartDiscount int64, taxRate decimal.Decimal, logger *zap.Logger) Totals {
	var t Totals
	if len(items) == 0 {
		return t
	}

	for _, line := range items {
		t.Subtotal += line.Gross()
		t.LineDiscount += line.LineDiscount
		t.ItemCount += line.Quantity
	}
	t.CartDiscount = cartDiscount
	t.Discount = t.LineDiscount + t.CartDiscount

	t.DiscountedSubtotal = t.Subtotal - t.Discount
	if t.DiscountedSubtotal < 0 {
		logger.Error("cart totals: discounted subtotal below zero, flooring",
			zap.Int64("subtotal", t.Subtotal),
			zap.Int64("lineDiscount", t.LineDiscount),
			zap.Int64("cartDiscount", t.CartDiscount),
		)
		t.DiscountedSubtotal = 0
	}

	t.Tax = PercentOf(t.DiscountedSubtotal, taxRate)
	if t.Tax < 0 {
		t.Tax = 0
	}
	t.Total = t.DiscountedSubtotal + t.Tax
	return t
}
