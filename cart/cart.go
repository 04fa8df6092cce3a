// Package cart holds the working sale of a point-of-sale session: its line
// items, discounts and the totals derived from them.
//
// A Cart is not safe for concurrent use. Callers serialize mutations of a
// single cart (see package session).
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cart is the in-memory working sale.
type Cart struct {
	currency     Currency
	taxRate      decimal.Decimal
	items        []LineItem
	cartDiscount int64

	newID  func() string
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Cart.
type Option func(*Cart)

// WithLogger sets the logger used to report internal consistency faults.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cart) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator overrides how line item ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(c *Cart) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithClock overrides the time source used for snapshots.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cart. taxRate is a percentage (10 means 10%).
func New(taxRate decimal.Decimal, currency Currency, opts ...Option) *Cart {
	c := &Cart{
		currency: currency,
		taxRate:  taxRate,
		newID:    uuid.NewString,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Currency returns the cart currency.
func (c *Cart) Currency() Currency { return c.currency }

// TaxRate returns the tax percentage applied to the discounted subtotal.
func (c *Cart) TaxRate() decimal.Decimal { return c.taxRate }

// CartDiscount returns the cart-level discount.
func (c *Cart) CartDiscount() int64 { return c.cartDiscount }

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// AddItem puts quantity units of p into the cart. If a line for the same
// product, variant and price exists with no line discount, its quantity grows;
// otherwise a new line is appended. Quantities are clamped to the available
// stock and the clamp is reported through the result.
func (c *Cart) AddItem(p ProductSnapshot, quantity int) (Result, error) {
	if quantity <= 0 {
		return Result{}, ErrInvalidQuantity
	}
	if p.AvailableStock <= 0 {
		return Result{}, ErrOutOfStock
	}

	for i := range c.items {
		line := &c.items[i]
		if !line.mergeableWith(p) {
			continue
		}
		requested := line.Quantity + quantity
		if quantity > p.AvailableStock-line.Quantity {
			// saturate: the sum can overflow and only matters up to stock+1
			requested = p.AvailableStock + 1
		}
		line.AvailableStock = p.AvailableStock
		line.Name = p.Name
		line.SKU = p.SKU
		line.Quantity = ClampQuantity(requested, 1, p.AvailableStock)
		c.rebalanceCartDiscount()
		return Result{ItemID: line.ItemID, Outcome: outcomeFor(requested, line.AvailableStock), Quantity: line.Quantity}, nil
	}

	line := LineItem{
		ItemID:         c.newID(),
		ProductID:      p.ProductID,
		Name:           p.Name,
		SKU:            p.SKU,
		Variant:        p.Variant,
		UnitPrice:      p.UnitPrice,
		AvailableStock: p.AvailableStock,
		Quantity:       ClampQuantity(quantity, 1, p.AvailableStock),
	}
	c.items = append(c.items, line)
	return Result{ItemID: line.ItemID, Outcome: outcomeFor(quantity, line.AvailableStock), Quantity: line.Quantity}, nil
}

// RemoveItem deletes the line with itemID. Removing a missing line is a no-op.
func (c *Cart) RemoveItem(itemID string) Result {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return Result{ItemID: itemID, Outcome: OutcomeNotFound}
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.rebalanceCartDiscount()
	return Result{ItemID: itemID, Outcome: OutcomeRemoved}
}

// FindItem returns the line with itemID.
func (c *Cart) FindItem(itemID string) (LineItem, bool) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return LineItem{}, false
	}
	return c.items[idx], true
}

func (c *Cart) indexOf(itemID string) int {
	for i := range c.items {
		if c.items[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func outcomeFor(requested, stock int) Outcome {
	if requested > stock {
		return OutcomeClamped
	}
	return OutcomeApplied
}
