package models

// Item is a sellable product row of the items table. Size doubles as the
// variant shown on the cart line (e.g. "1L", "negro", "USB-C").
type Item struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Size          string `json:"size,omitempty"`
	Price         int64  `json:"price"`
	StockTotal    int    `json:"stockTotal"`
	StockReserved int    `json:"stockReserved"`
	IsActive      bool   `json:"isActive"`
}

// Available is the stock that can still be sold.
func (i Item) Available() int {
	if n := i.StockTotal - i.StockReserved; n > 0 {
		return n
	}
	return 0
}

// AddStockRequest is the body of POST /admin/products/{productId}/stock
// Example: {"quantity": 12}
type AddStockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// AddStockResponse reports the stock after receiving goods
type AddStockResponse struct {
	ID            int64  `json:"id"`
	SKU           string `json:"sku"`
	Size          string `json:"size,omitempty"`
	Price         int64  `json:"price"`
	StockTotal    int    `json:"stockTotal"`
	StockReserved int    `json:"stockReserved"`
}
