package models

import (
	"time"

	"mostrador-pos/cart"
)

// Sale represents a sale in the database
type Sale struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"sessionId"`
	Cashier      string    `json:"cashier"`
	CustomerName string    `json:"customerName,omitempty"`
	SoldAt       time.Time `json:"soldAt"`
	Currency     string    `json:"currency"`
	Subtotal     int64     `json:"subtotal"`
	LineDiscount int64     `json:"lineDiscount"`
	CartDiscount int64     `json:"cartDiscount"`
	Tax          int64     `json:"tax"`
	Total        int64     `json:"total"`
	AmountPaid   int64     `json:"amountPaid"`
	ChangeDue    int64     `json:"changeDue"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SaleLine is a frozen copy of a cart line at checkout
type SaleLine struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"productId"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Variant      string `json:"variant,omitempty"`
	UnitPrice    int64  `json:"unitPrice"`
	Qty          int    `json:"qty"`
	LineDiscount int64  `json:"lineDiscount"`
	LineTotal    int64  `json:"lineTotal"`
}

// SalePayment is one tender used to pay a sale.
// Method is one of cash, card, transfer or qr; Destination names the
// account or terminal that received the money (e.g. "Caja", "Bancard", "Itaú").
type SalePayment struct {
	Method      string `json:"method" validate:"required,oneof=cash card transfer qr"`
	Destination string `json:"destination" validate:"required"`
	Amount      int64  `json:"amount" validate:"gt=0"`
}

// SaleDetail represents a sale with its lines and payments
// Example response:
// {
//   "id": 10,
//   "sessionId": "4b8e...",
//   "cashier": "caja1",
//   "soldAt": "2026-01-04T10:30:00Z",
//   "currency": "PYG",
//   "subtotal": 200000,
//   "lineDiscount": 20000,
//   "cartDiscount": 0,
//   "tax": 18000,
//   "total": 198000,
//   "amountPaid": 200000,
//   "changeDue": 2000,
//   "status": "paid",
//   "lines": [{"productId": 1, "name": "Termo 1L", "qty": 2, "unitPrice": 100000, "lineDiscount": 20000, "lineTotal": 180000}],
//   "payments": [{"method": "cash", "destination": "Caja", "amount": 200000}]
// }
type SaleDetail struct {
	Sale
	Lines    []SaleLine    `json:"lines"`
	Payments []SalePayment `json:"payments"`
}

// SaleListItem represents a sale in a list response
type SaleListItem struct {
	ID           int64     `json:"id"`
	SoldAt       time.Time `json:"soldAt"`
	Cashier      string    `json:"cashier"`
	CustomerName string    `json:"customerName,omitempty"`
	Total        int64     `json:"total"`
	AmountPaid   int64     `json:"amountPaid"`
}

// SaleListResponse represents the response for listing sales
type SaleListResponse struct {
	Sales []SaleListItem `json:"sales"`
}

// RecordSaleParams is everything needed to persist a finished sale
type RecordSaleParams struct {
	SessionID    string
	Cashier      string
	CustomerName string
	Notes        string
	Snapshot     cart.Snapshot
	Payments     []SalePayment
	AmountPaid   int64
	ChangeDue    int64
}
