package utils

import (
	"strconv"
	"strings"

	"mostrador-pos/cart"
)

// FormatPYG formats an integer amount of guaraníes as a string like "Gs. 12.500".
// Uses dot as thousands separator (common in Paraguay).
func FormatPYG(amount int64) string {
	return FormatMoney(amount, cart.PYG)
}

// FormatMoney formats minor units of cur the Paraguayan way: dot thousands
// separator, comma before the minor digits ("USD 1.234,50").
func FormatMoney(amount int64, cur cart.Currency) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	symbol := cur.Code
	if cur.Code == cart.PYG.Code {
		symbol = "Gs."
	}

	s := strconv.FormatInt(amount, 10)
	var minor string
	if exp := int(cur.Exponent); exp > 0 {
		if len(s) <= exp {
			s = strings.Repeat("0", exp-len(s)+1) + s
		}
		s, minor = s[:len(s)-exp], s[len(s)-exp:]
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + symbol
	b.Grow(len(s) + len(s)/3 + len(minor) + len(symbol) + 3)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteByte(' ')

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	if minor != "" {
		b.WriteByte(',')
		b.WriteString(minor)
	}

	return b.String()
}
