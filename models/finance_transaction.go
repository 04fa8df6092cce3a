package models

import "time"

// FinanceTransaction represents a financial transaction in the database
type FinanceTransaction struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"` // 'income' or 'expense'
	Source      string    `json:"source"`
	SourceID    int64     `json:"sourceId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Amount      int64     `json:"amount"`
	Destination string    `json:"destination"`
	Category    string    `json:"category,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateFinanceTransactionRequest represents the request body for creating a finance transaction
// Example: {
//   "type": "expense",
//   "source": "manual",
//   "occurredAt": "2026-01-04T10:30:00-03:00",
//   "amount": 150000,
//   "destination": "Caja",
//   "category": "repuestos",
//   "notes": "Pantallas para reparación"
// }
type CreateFinanceTransactionRequest struct {
	Type        string `json:"type" validate:"required,oneof=income expense"`
	Source      string `json:"source" validate:"required"`
	SourceID    int64  `json:"sourceId"`
	OccurredAt  string `json:"occurredAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Amount      int64  `json:"amount" validate:"gt=0"`
	Destination string `json:"destination" validate:"required"`
	Category    string `json:"category,omitempty"`
	Notes       string `json:"notes,omitempty"`
}
