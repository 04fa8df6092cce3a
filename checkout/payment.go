package checkout

import (
	"fmt"

	"mostrador-pos/models"
)

// Payment methods accepted at the counter.
const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
	MethodQR       = "qr"
)

// PaymentSummary is the result of matching tenders against a total.
type PaymentSummary struct {
	Total     int64 `json:"total"`
	Paid      int64 `json:"paid"`
	ChangeDue int64 `json:"changeDue"`
	Remaining int64 `json:"remaining"`
}

// Settled reports whether the tenders cover the total.
func (p PaymentSummary) Settled() bool { return p.Remaining == 0 }

// ComputePayment adds up the tenders for a sale of total. Change is only
// handed back out of cash: paying a card or transfer above the total is
// rejected with ErrOverpayment, and so is change larger than the cash given.
func ComputePayment(total int64, tenders []models.SalePayment) (PaymentSummary, error) {
	summary := PaymentSummary{Total: total}
	var cash int64
	for i, t := range tenders {
		if t.Amount <= 0 {
			return PaymentSummary{}, fmt.Errorf("%w: tender %d amount %d", ErrInvalidTender, i, t.Amount)
		}
		switch t.Method {
		case MethodCash:
			cash += t.Amount
		case MethodCard, MethodTransfer, MethodQR:
		default:
			return PaymentSummary{}, fmt.Errorf("%w: unknown method %q", ErrInvalidTender, t.Method)
		}
		summary.Paid += t.Amount
	}

	switch {
	case summary.Paid < total:
		summary.Remaining = total - summary.Paid
	case summary.Paid > total:
		change := summary.Paid - total
		if change > cash {
			return PaymentSummary{}, fmt.Errorf("%w: paid %d for a total of %d", ErrOverpayment, summary.Paid, total)
		}
		summary.ChangeDue = change
	}
	return summary, nil
}
