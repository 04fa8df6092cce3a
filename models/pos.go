package models

import (
	"time"

	"mostrador-pos/cart"
)

// StartSessionRequest opens a sale at the counter
// Example: {"cashier": "caja1"}
type StartSessionRequest struct {
	Cashier string `json:"cashier" validate:"required,max=60"`
}

// AddItemRequest adds a product to the cart
// Example: {"productId": 12, "quantity": 2}
type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0,max=10000"`
}

// SetQuantityRequest sets the quantity of a line; 0 removes it
// Example: {"quantity": 3}
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=10000"`
}

// DiscountRequest sets a line or cart discount in minor units
// Example: {"amount": 20000}
type DiscountRequest struct {
	Amount *int64 `json:"amount" validate:"required"`
}

// CheckoutRequest finalizes the sale
// Example: {"customerName": "Ana Benítez", "payments": [{"method": "cash", "destination": "Caja", "amount": 200000}]}
type CheckoutRequest struct {
	CustomerName string        `json:"customerName,omitempty" validate:"max=120"`
	Notes        string        `json:"notes,omitempty"`
	Payments     []SalePayment `json:"payments" validate:"required,min=1,dive"`
}

// CartResponse is the cart view returned by every session endpoint
// Example response:
// {
//   "sessionId": "4b8e...",
//   "cashier": "caja1",
//   "startedAt": "2026-01-04T10:00:00Z",
//   "currency": "PYG",
//   "taxRate": "10",
//   "items": [{"itemId": "9c1f...", "productId": 1, "name": "Termo 1L", "unitPrice": 100000, "availableStock": 5, "quantity": 2, "lineDiscount": 0}],
//   "cartDiscount": 0,
//   "totals": {"subtotal": 200000, "discountedSubtotal": 200000, "tax": 20000, "total": 220000, "itemCount": 2},
//   "warnings": [{"itemId": "9c1f...", "code": "stock_limit_reached", "quantity": 5}]
// }
type CartResponse struct {
	SessionID    string          `json:"sessionId"`
	Cashier      string          `json:"cashier"`
	StartedAt    time.Time       `json:"startedAt"`
	Currency     string          `json:"currency"`
	TaxRate      string          `json:"taxRate"`
	Items        []cart.LineItem `json:"items"`
	CartDiscount int64           `json:"cartDiscount"`
	Totals       cart.Totals     `json:"totals"`
	Warnings     []CartWarning   `json:"warnings,omitempty"`
}

// CartWarning flags a mutation that was applied differently than asked.
type CartWarning struct {
	ItemID   string `json:"itemId"`
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

const (
	// WarningStockLimitReached is set when a quantity was clamped to stock.
	WarningStockLimitReached = "stock_limit_reached"
	// WarningSoldOut is set when a stock refresh dropped a line.
	WarningSoldOut = "sold_out"
)
