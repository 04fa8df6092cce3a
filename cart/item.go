package cart

// ProductSnapshot is the slice of catalog data a cart copies when a product is
// added. The cart never reads the catalog again on its own.
type ProductSnapshot struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Variant        string `json:"variant,omitempty"`
	UnitPrice      int64  `json:"unitPrice"`
	AvailableStock int    `json:"availableStock"`
}

// LineItem is one row of the cart.
// Invariants kept by Cart: 1 <= Quantity <= AvailableStock and
// 0 <= LineDiscount <= UnitPrice*Quantity.
type LineItem struct {
	ItemID         string `json:"itemId"`
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Variant        string `json:"variant,omitempty"`
	UnitPrice      int64  `json:"unitPrice"`
	AvailableStock int    `json:"availableStock"`
	Quantity       int    `json:"quantity"`
	LineDiscount   int64  `json:"lineDiscount"`
}

// Gross is unit price times quantity, before any discount.
func (l LineItem) Gross() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// LineSubtotal is the gross value minus the line discount.
func (l LineItem) LineSubtotal() int64 {
	return l.Gross() - l.LineDiscount
}

// mergeableWith reports whether adding p should grow this line instead of
// opening a new one: same product, same variant and price, and no discount on
// the line yet. A discounted line stays separate from fresh additions.
func (l LineItem) mergeableWith(p ProductSnapshot) bool {
	return l.ProductID == p.ProductID &&
		l.Variant == p.Variant &&
		l.UnitPrice == p.UnitPrice &&
		l.LineDiscount == 0
}
