package controller

import (
	"net/http"

	"mostrador-pos/models"
	"mostrador-pos/service"

	"go.uber.org/zap"
)

// CartController handles HTTP requests for counter sale sessions
type CartController struct {
	service service.CartServiceInterface
	log     *zap.SugaredLogger
}

// NewCartController creates a new CartController
func NewCartController(svc service.CartServiceInterface, logger *zap.Logger) *CartController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartController{
		service: svc,
		log:     logger.Sugar(),
	}
}

// Start handles POST /admin/pos/sessions
// Example request:
// POST /admin/pos/sessions
// {
//   "cashier": "caja1"
// }
// Example response (201):
// {
//   "sessionId": "4b8e0f3a-...",
//   "cashier": "caja1",
//   "startedAt": "2026-01-04T10:00:00-03:00",
//   "currency": "PYG",
//   "taxRate": "10",
//   "items": [],
//   "cartDiscount": 0,
//   "totals": {"subtotal": 0, "discountedSubtotal": 0, "tax": 0, "total": 0, "itemCount": 0}
// }
func (c *CartController) Start(w http.ResponseWriter, r *http.Request) {
	c.log.Infof("📥 StartSession: Received %s request to %s", r.Method, r.URL.Path)

	var req models.StartSessionRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ StartSession: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := c.service.Start(r.Context(), &req)
	if err != nil {
		writeError(w, c.log, "StartSession", err)
		return
	}

	c.log.Infof("✅ StartSession: session=%s cashier=%s", res.SessionID, res.Cashier)
	writeJSON(w, c.log, http.StatusCreated, res)
}

// Get handles GET /admin/pos/sessions/{sessionId}
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	res, err := c.service.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, c.log, "GetSession", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, res)
}

// Discard handles DELETE /admin/pos/sessions/{sessionId}
// The cart is dropped without recording a sale. Responds 204.
func (c *CartController) Discard(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	c.log.Infof("📥 DiscardSession: session=%s", sessionID)

	if err := c.service.Discard(r.Context(), sessionID); err != nil {
		writeError(w, c.log, "DiscardSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /admin/pos/sessions/{sessionId}/items
// Example request:
// {
//   "productId": 1,
//   "quantity": 2
// }
// Asking for more than the available stock adds what is left and returns
// a "stock_limit_reached" warning:
// {
//   ...
//   "warnings": [{"itemId": "9c1f...", "code": "stock_limit_reached", "quantity": 5}]
// }
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	c.log.Infof("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddItemRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ AddItem: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := c.service.AddItem(r.Context(), sessionID, &req)
	if err != nil {
		writeError(w, c.log, "AddItem", err)
		return
	}

	c.log.Infof("✅ AddItem: session=%s product=%d total=%d", sessionID, req.ProductID, res.Totals.Total)
	writeJSON(w, c.log, http.StatusOK, res)
}

// SetQuantity handles PATCH /admin/pos/sessions/{sessionId}/items/{itemId}
// Example request:
// {
//   "quantity": 3
// }
// A quantity of 0 removes the line.
func (c *CartController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, itemID := r.PathValue("sessionId"), r.PathValue("itemId")

	var req models.SetQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ SetQuantity: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := c.service.SetQuantity(r.Context(), sessionID, itemID, *req.Quantity)
	if err != nil {
		writeError(w, c.log, "SetQuantity", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, res)
}

// RemoveItem handles DELETE /admin/pos/sessions/{sessionId}/items/{itemId}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, itemID := r.PathValue("sessionId"), r.PathValue("itemId")

	res, err := c.service.RemoveItem(r.Context(), sessionID, itemID)
	if err != nil {
		writeError(w, c.log, "RemoveItem", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, res)
}

// SetLineDiscount handles PUT /admin/pos/sessions/{sessionId}/items/{itemId}/discount
// Example request:
// {
//   "amount": 20000
// }
func (c *CartController) SetLineDiscount(w http.ResponseWriter, r *http.Request) {
	sessionID, itemID := r.PathValue("sessionId"), r.PathValue("itemId")

	var req models.DiscountRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ SetLineDiscount: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := c.service.SetLineDiscount(r.Context(), sessionID, itemID, *req.Amount)
	if err != nil {
		writeError(w, c.log, "SetLineDiscount", err)
		return
	}

	c.log.Infof("💰 SetLineDiscount: session=%s item=%s amount=%d", sessionID, itemID, *req.Amount)
	writeJSON(w, c.log, http.StatusOK, res)
}

// SetCartDiscount handles PUT /admin/pos/sessions/{sessionId}/discount
// Example request:
// {
//   "amount": 80000
// }
func (c *CartController) SetCartDiscount(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	var req models.DiscountRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ SetCartDiscount: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := c.service.SetCartDiscount(r.Context(), sessionID, *req.Amount)
	if err != nil {
		writeError(w, c.log, "SetCartDiscount", err)
		return
	}

	c.log.Infof("💰 SetCartDiscount: session=%s amount=%d", sessionID, *req.Amount)
	writeJSON(w, c.log, http.StatusOK, res)
}

// RefreshStock handles POST /admin/pos/sessions/{sessionId}/refresh
// Re-reads stock for every product in the cart. Lines that no longer fit are
// clamped ("stock_limit_reached") or dropped ("sold_out").
func (c *CartController) RefreshStock(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	res, err := c.service.RefreshStock(r.Context(), sessionID)
	if err != nil {
		writeError(w, c.log, "RefreshStock", err)
		return
	}
	writeJSON(w, c.log, http.StatusOK, res)
}
