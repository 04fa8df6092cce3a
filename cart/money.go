package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes the currency a cart is priced in.
// Amounts are always carried as int64 minor units; Exponent is the number of
// minor-unit digits (0 for the guaraní).
type Currency struct {
	Code     string `json:"code"`
	Exponent int32  `json:"exponent"`
}

// PYG is the Paraguayan guaraní. It has no minor units.
var PYG = Currency{Code: "PYG", Exponent: 0}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// CurrencyFromCode returns the known currency for code, defaulting to PYG.
func CurrencyFromCode(code string) Currency {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "USD":
		return Currency{Code: "USD", Exponent: 2}
	case "BRL":
		return Currency{Code: "BRL", Exponent: 2}
	case "COP":
		return Currency{Code: "COP", Exponent: 0}
	default:
		return PYG
	}
}

// RoundMoney rounds a (possibly fractional) minor-unit amount to a whole
// minor unit, halves rounding up. Every total in this package goes through it.
func RoundMoney(amount decimal.Decimal) int64 {
	return amount.Add(half).Floor().IntPart()
}

// PercentOf returns pct percent of amount, rounded with RoundMoney.
func PercentOf(amount int64, pct decimal.Decimal) int64 {
	return RoundMoney(decimal.NewFromInt(amount).Mul(pct).Div(hundred))
}

// ClampQuantity returns requested bounded to [min, max].
func ClampQuantity(requested, min, max int) int {
	if requested > max {
		requested = max
	}
	if requested < min {
		requested = min
	}
	return requested
}
