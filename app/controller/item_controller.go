package controller

import (
	"net/http"

	"mostrador-pos/models"
	"mostrador-pos/repository"

	"go.uber.org/zap"
)

// ItemController handles HTTP requests for products
type ItemController struct {
	repository repository.ProductRepositoryInterface
	log        *zap.SugaredLogger
}

// NewItemController creates a new ItemController
func NewItemController(repo repository.ProductRepositoryInterface, logger *zap.Logger) *ItemController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemController{
		repository: repo,
		log:        logger.Sugar(),
	}
}

// AddStock handles POST /admin/products/{productId}/stock
// Registers received goods for an existing product.
// Example request:
// {
//   "quantity": 12
// }
// Example response:
// {
//   "id": 1,
//   "sku": "TER-1L",
//   "size": "1L",
//   "price": 100000,
//   "stockTotal": 17,
//   "stockReserved": 0
// }
func (c *ItemController) AddStock(w http.ResponseWriter, r *http.Request) {
	c.log.Infof("📥 AddStock: Received %s request to %s", r.Method, r.URL.Path)

	productID, err := pathInt64(r, "productId")
	if err != nil {
		c.log.Infof("❌ AddStock: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.AddStockRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ AddStock: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := c.repository.AddStock(r.Context(), productID, req.Quantity)
	if err != nil {
		writeError(w, c.log, "AddStock", err)
		return
	}

	c.log.Infof("📦 AddStock: product=%d stock_total=%d", res.ID, res.StockTotal)
	writeJSON(w, c.log, http.StatusOK, res)
}
