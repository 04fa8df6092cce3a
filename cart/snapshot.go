package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is an immutable copy of a cart handed to checkout and receipt
// rendering at the moment a sale is finalized.
type Snapshot struct {
	Currency     Currency        `json:"currency"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Items        []LineItem      `json:"items"`
	CartDiscount int64           `json:"cartDiscount"`
	Totals       Totals          `json:"totals"`
	TakenAt      time.Time       `json:"takenAt"`
}

// Snapshot copies the current lines together with their totals.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Currency:     c.currency,
		TaxRate:      c.taxRate,
		Items:        c.Items(),
		CartDiscount: c.cartDiscount,
		Totals:       c.Totals(),
		TakenAt:      c.now().UTC(),
	}
}

// State is the serializable form of a cart, used to park a cart between
// requests.
type State struct {
	Currency     Currency        `json:"currency"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Items        []LineItem      `json:"items"`
	CartDiscount int64           `json:"cartDiscount"`
}

// State returns the serializable form of c.
func (c *Cart) State() State {
	return State{
		Currency:     c.currency,
		TaxRate:      c.taxRate,
		Items:        c.Items(),
		CartDiscount: c.cartDiscount,
	}
}

// FromState rebuilds a cart from its serialized form.
func FromState(s State, opts ...Option) *Cart {
	c := New(s.TaxRate, s.Currency, opts...)
	if len(s.Items) > 0 {
		c.items = make([]LineItem, len(s.Items))
		copy(c.items, s.Items)
	}
	c.cartDiscount = s.CartDiscount
	return c
}
