package cart

// SetQuantity sets the quantity of a line. A quantity of zero or less removes
// the line. Larger quantities are clamped to the available stock; the clamp
// is reported as OutcomeClamped and the mutation still applies.
//
// Lowering a quantity also lowers the line discount when it would exceed the
// new gross value, and the cart discount when it would exceed what is left to
// discount.
func (c *Cart) SetQuantity(itemID string, requested int) Result {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return Result{ItemID: itemID, Outcome: OutcomeNotFound}
	}
	if requested <= 0 {
		return c.RemoveItem(itemID)
	}

	line := &c.items[idx]
	line.Quantity = ClampQuantity(requested, 1, line.AvailableStock)
	if gross := line.Gross(); line.LineDiscount > gross {
		line.LineDiscount = gross
	}
	c.rebalanceCartDiscount()

	return Result{ItemID: itemID, Outcome: outcomeFor(requested, line.AvailableStock), Quantity: line.Quantity}
}

// SetLineDiscount sets the discount of a single line. The amount must lie in
// [0, unit price * quantity]; otherwise ErrInvalidDiscount is returned and
// the cart is unchanged.
func (c *Cart) SetLineDiscount(itemID string, amount int64) (Result, error) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return Result{ItemID: itemID, Outcome: OutcomeNotFound}, nil
	}
	line := &c.items[idx]
	if amount < 0 || amount > line.Gross() {
		return Result{}, ErrInvalidDiscount
	}
	line.LineDiscount = amount
	c.rebalanceCartDiscount()
	return Result{ItemID: itemID, Outcome: OutcomeApplied, Quantity: line.Quantity}, nil
}

// SetCartDiscount sets the discount applied to the whole sale after line
// discounts and before tax. The amount must lie in
// [0, subtotal - total line discount].
func (c *Cart) SetCartDiscount(amount int64) error {
	if amount < 0 || amount > c.discountable() {
		return ErrInvalidDiscount
	}
	c.cartDiscount = amount
	return nil
}

// Clear empties the cart and resets the cart discount.
func (c *Cart) Clear() {
	c.items = nil
	c.cartDiscount = 0
}

// UpdateStock refreshes the available stock of every line for productID and
// re-applies the quantity bounds. Lines whose product ran out are removed.
// It returns one result per affected line.
func (c *Cart) UpdateStock(productID int64, stock int) []Result {
	var results []Result
	kept := c.items[:0]
	for _, line := range c.items {
		if line.ProductID != productID {
			kept = append(kept, line)
			continue
		}
		if stock <= 0 {
			results = append(results, Result{ItemID: line.ItemID, Outcome: OutcomeRemoved})
			continue
		}
		line.AvailableStock = stock
		outcome := OutcomeApplied
		if line.Quantity > stock {
			line.Quantity = stock
			outcome = OutcomeClamped
		}
		if gross := line.Gross(); line.LineDiscount > gross {
			line.LineDiscount = gross
		}
		kept = append(kept, line)
		results = append(results, Result{ItemID: line.ItemID, Outcome: outcome, Quantity: line.Quantity})
	}
	c.items = kept
	c.rebalanceCartDiscount()
	return results
}

// discountable is what a cart discount may at most take off.
func (c *Cart) discountable() int64 {
	var sum int64
	for _, line := range c.items {
		sum += line.LineSubtotal()
	}
	return sum
}

func (c *Cart) rebalanceCartDiscount() {
	if limit := c.discountable(); c.cartDiscount > limit {
		c.cartDiscount = limit
	}
}
