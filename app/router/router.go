package router

import (
	"net/http"

	"mostrador-pos/app/controller"
)

type Controllers struct {
	Cart               *controller.CartController
	Sale               *controller.SaleController
	Item               *controller.ItemController
	FinanceTransaction *controller.FinanceTransactionController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every endpoint on mux. Method patterns make the mux
// answer 405 for the wrong verb.
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Sale sessions at the counter
	mux.HandleFunc("POST /admin/pos/sessions", controllers.Cart.Start)
	mux.HandleFunc("GET /admin/pos/sessions/{sessionId}", controllers.Cart.Get)
	mux.HandleFunc("DELETE /admin/pos/sessions/{sessionId}", controllers.Cart.Discard)
	mux.HandleFunc("POST /admin/pos/sessions/{sessionId}/items", controllers.Cart.AddItem)
	mux.HandleFunc("PATCH /admin/pos/sessions/{sessionId}/items/{itemId}", controllers.Cart.SetQuantity)
	mux.HandleFunc("DELETE /admin/pos/sessions/{sessionId}/items/{itemId}", controllers.Cart.RemoveItem)
	mux.HandleFunc("PUT /admin/pos/sessions/{sessionId}/items/{itemId}/discount", controllers.Cart.SetLineDiscount)
	mux.HandleFunc("PUT /admin/pos/sessions/{sessionId}/discount", controllers.Cart.SetCartDiscount)
	mux.HandleFunc("POST /admin/pos/sessions/{sessionId}/refresh", controllers.Cart.RefreshStock)
	mux.HandleFunc("POST /admin/pos/sessions/{sessionId}/checkout", controllers.Sale.Checkout)

	// Sales routes
	mux.HandleFunc("GET /admin/sales", controllers.Sale.ListSales)
	mux.HandleFunc("GET /admin/sales/{id}", controllers.Sale.GetSale)
	mux.HandleFunc("GET /admin/sales/{id}/receipt", controllers.Sale.Receipt)
	mux.HandleFunc("GET /admin/sales/{id}/receipt.pdf", controllers.Sale.ReceiptPDF)

	// Stock
	mux.HandleFunc("POST /admin/products/{productId}/stock", controllers.Item.AddStock)

	// Finance
	mux.HandleFunc("POST /admin/finance-transactions", controllers.FinanceTransaction.Create)
}
