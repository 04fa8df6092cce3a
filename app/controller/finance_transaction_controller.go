package controller

import (
	"net/http"

	"mostrador-pos/models"
	"mostrador-pos/repository"

	"go.uber.org/zap"
)

// FinanceTransactionController handles HTTP requests for finance transactions
type FinanceTransactionController struct {
	repository repository.FinanceTransactionRepositoryInterface
	log        *zap.SugaredLogger
}

// NewFinanceTransactionController creates a new FinanceTransactionController
func NewFinanceTransactionController(repo repository.FinanceTransactionRepositoryInterface, logger *zap.Logger) *FinanceTransactionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceTransactionController{
		repository: repo,
		log:        logger.Sugar(),
	}
}

// Create handles POST /admin/finance-transactions
// Sales write their own income rows; this is for manual entries.
// Example request:
// {
//   "type": "expense",
//   "source": "manual",
//   "occurredAt": "2026-01-04T10:30:00-03:00",
//   "amount": 150000,
//   "destination": "Caja",
//   "category": "repuestos",
//   "notes": "Pantallas para reparación"
// }
// Example response (201):
// {
//   "id": 1,
//   "type": "expense",
//   "source": "manual",
//   "sourceId": 0,
//   "occurredAt": "2026-01-04T10:30:00-03:00",
//   "amount": 150000,
//   "destination": "Caja",
//   "category": "repuestos",
//   "notes": "Pantallas para reparación",
//   "createdAt": "2026-01-04T10:30:02-03:00"
// }
func (c *FinanceTransactionController) Create(w http.ResponseWriter, r *http.Request) {
	c.log.Infof("📥 CreateFinanceTransaction: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateFinanceTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		c.log.Infof("❌ CreateFinanceTransaction: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transaction, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		writeError(w, c.log, "CreateFinanceTransaction", err)
		return
	}

	c.log.Infof("✅ CreateFinanceTransaction: Successfully created transaction id=%d", transaction.ID)
	writeJSON(w, c.log, http.StatusCreated, transaction)
}
