package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"mostrador-pos/models"
	"mostrador-pos/repository"

	"go.uber.org/zap"
)

// CheckoutService finalizes an open session into a sale.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.SaleDetail, error)
}

// ReceiptRenderer prints a recorded sale.
type ReceiptRenderer interface {
	HTML(w io.Writer, sale *models.SaleDetail) error
	PDF(ctx context.Context, sale *models.SaleDetail) ([]byte, error)
}

// SaleController handles HTTP requests for sales
type SaleController struct {
	checkout   CheckoutService
	repository repository.SaleRepositoryInterface
	receipts   ReceiptRenderer
	log        *zap.SugaredLogger
}

// NewSaleController creates a new SaleController
func NewSaleController(checkout CheckoutService, repo repository.SaleRepositoryInterface, receipts ReceiptRenderer, logger *zap.Logger) *SaleController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleController{
		checkout:   checkout,
		repository: repo,
		receipts:   receipts,
		log:        logger.Sugar(),
	}
}

// Checkout handles POST /admin/pos/sessions/{sessionId}/checkout
// Example request:
// {
//   "customerName": "Ana Benítez",
//   "payments": [
//     {"method": "card", "destination": "Bancard", "amount": 200000},
//     {"method": "cash", "destination": "Caja", "amount": 160000}
//   ]
// }
// Example response (201):
// {
//   "id": 10,
//   "sessionId": "4b8e0f3a-...",
//   "cashier": "caja1",
//   "customerName": "Ana Benítez",
//   "soldAt": "2026-01-04T10:30:00-03:00",
//   "currency": "PYG",
//   "subtotal": 345000,
//   "lineDiscount": 0,
//   "cartDiscount": 0,
//   "tax": 12500,
//   "total": 357500,
//   "amountPaid": 360000,
//   "changeDue": 2500,
//   "status": "paid",
//   "lines": [...],
//   "payments": [...]
// }
func (c *SaleController) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	c.log.Infof("📥 Checkout: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ Checkout: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sale, err := c.checkout.Checkout(r.Context(), sessionID, &req)
	if err != nil {
		writeError(w, c.log, "Checkout", err)
		return
	}

	c.log.Infof("✅ Checkout: sale=%d total=%d change=%d", sale.ID, sale.Total, sale.ChangeDue)
	writeJSON(w, c.log, http.StatusCreated, sale)
}

// ListSales handles GET /admin/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
// Both bounds are optional and inclusive calendar days in the shop's time zone.
// Example response:
// {
//   "sales": [
//     {
//       "id": 10,
//       "soldAt": "2026-01-04T10:30:00-03:00",
//       "cashier": "caja1",
//       "customerName": "Ana Benítez",
//       "total": 357500,
//       "amountPaid": 360000
//     }
//   ]
// }
func (c *SaleController) ListSales(w http.ResponseWriter, r *http.Request) {
	c.log.Infof("📥 ListSales: Received %s request to %s", r.Method, r.URL.Path)

	var from, to *string
	if v := r.URL.Query().Get("from"); v != "" {
		from = &v
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to = &v
	}

	sales, err := c.repository.List(r.Context(), from, to)
	if err != nil {
		writeError(w, c.log, "ListSales", err)
		return
	}

	c.log.Infof("✅ ListSales: Returning %d sales", len(sales))
	writeJSON(w, c.log, http.StatusOK, models.SaleListResponse{Sales: sales})
}

// GetSale handles GET /admin/sales/{id}
func (c *SaleController) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, ok := c.loadSale(w, r, "GetSale")
	if !ok {
		return
	}
	writeJSON(w, c.log, http.StatusOK, sale)
}

// Receipt handles GET /admin/sales/{id}/receipt
// Responds with the printable HTML receipt.
func (c *SaleController) Receipt(w http.ResponseWriter, r *http.Request) {
	sale, ok := c.loadSale(w, r, "Receipt")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.receipts.HTML(&buf, sale); err != nil {
		writeError(w, c.log, "Receipt", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		c.log.Errorf("❌ Receipt: Error writing response: %v", err)
	}
}

// ReceiptPDF handles GET /admin/sales/{id}/receipt.pdf
func (c *SaleController) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	sale, ok := c.loadSale(w, r, "ReceiptPDF")
	if !ok {
		return
	}

	pdf, err := c.receipts.PDF(r.Context(), sale)
	if err != nil {
		writeError(w, c.log, "ReceiptPDF", err)
		return
	}

	c.log.Infof("📄 ReceiptPDF: sale=%d bytes=%d", sale.ID, len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="recibo-%08d.pdf"`, sale.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		c.log.Errorf("❌ ReceiptPDF: Error writing response: %v", err)
	}
}

func (c *SaleController) loadSale(w http.ResponseWriter, r *http.Request, op string) (*models.SaleDetail, bool) {
	id, err := pathInt64(r, "id")
	if err != nil {
		c.log.Infof("❌ %s: %v", op, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	sale, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, c.log, op, err)
		return nil, false
	}
	return sale, true
}
