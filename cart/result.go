package cart

// Outcome tags what a mutation did to a line item.
type Outcome int

const (
	// OutcomeApplied means the requested change was applied as asked.
	OutcomeApplied Outcome = iota
	// OutcomeClamped means the change was applied at the available stock
	// instead of the requested quantity (stock limit reached).
	OutcomeClamped
	// OutcomeRemoved means the line left the cart.
	OutcomeRemoved
	// OutcomeNotFound means no line had the given id; nothing changed.
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeClamped:
		return "clamped"
	case OutcomeRemoved:
		return "removed"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Result reports the effect of a line mutation.
type Result struct {
	ItemID   string  `json:"itemId"`
	Outcome  Outcome `json:"-"`
	Quantity int     `json:"quantity"`
}

// StockLimitReached is the non-fatal signal raised when a requested quantity
// exceeded the line's available stock.
func (r Result) StockLimitReached() bool {
	return r.Outcome == OutcomeClamped
}

// Found reports whether the mutation targeted an existing line.
func (r Result) Found() bool {
	return r.Outcome != OutcomeNotFound
}
