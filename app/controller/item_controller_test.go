package controller_test

import (
	"context"
	"net/http"
	"testing"

	"mostrador-pos/app/controller"
	"mostrador-pos/cart"
	"mostrador-pos/models"
	"mostrador-pos/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	addStockFn func(ctx context.Context, productID int64, quantity int) (*models.AddStockResponse, error)
}

var _ repository.ProductRepositoryInterface = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) GetSnapshot(context.Context, int64) (cart.ProductSnapshot, error) {
	return cart.ProductSnapshot{}, repository.ErrProductNotFound
}

func (f *fakeProductRepo) AddStock(ctx context.Context, productID int64, quantity int) (*models.AddStockResponse, error) {
	return f.addStockFn(ctx, productID, quantity)
}

type fakeFinanceRepo struct {
	createFn func(ctx context.Context, req *models.CreateFinanceTransactionRequest) (*models.FinanceTransaction, error)
}

func (f *fakeFinanceRepo) Create(ctx context.Context, req *models.CreateFinanceTransactionRequest) (*models.FinanceTransaction, error) {
	return f.createFn(ctx, req)
}

func TestItemController_AddStock(t *testing.T) {
	repo := &fakeProductRepo{
		addStockFn: func(_ context.Context, productID int64, quantity int) (*models.AddStockResponse, error) {
			if productID == 404 {
				return nil, repository.ErrProductNotFound
			}
			return &models.AddStockResponse{ID: productID, SKU: "TER-1L", StockTotal: 5 + quantity}, nil
		},
	}
	c := controller.NewItemController(repo, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/products/{productId}/stock", c.AddStock)

	rec := do(mux, http.MethodPost, "/admin/products/1/stock", `{"quantity":12}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stockTotal":17`)

	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodPost, "/admin/products/404/stock", `{"quantity":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodPost, "/admin/products/x/stock", `{"quantity":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodPost, "/admin/products/1/stock", `{"quantity":0}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodGet, "/admin/products/1/stock", "").Code)
}

func TestFinanceTransactionController_Create(t *testing.T) {
	repo := &fakeFinanceRepo{
		createFn: func(_ context.Context, req *models.CreateFinanceTransactionRequest) (*models.FinanceTransaction, error) {
			return &models.FinanceTransaction{ID: 3, Type: req.Type, Source: req.Source, Amount: req.Amount, Destination: req.Destination}, nil
		},
	}
	c := controller.NewFinanceTransactionController(repo, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/finance-transactions", c.Create)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"expense", `{"type":"expense","source":"manual","amount":150000,"destination":"Caja","occurredAt":"2026-01-04T10:30:00-03:00"}`, http.StatusCreated},
		{"bad_type", `{"type":"gift","source":"manual","amount":1,"destination":"Caja"}`, http.StatusBadRequest},
		{"zero_amount", `{"type":"income","source":"manual","amount":0,"destination":"Caja"}`, http.StatusBadRequest},
		{"no_source", `{"type":"income","amount":1,"destination":"Caja"}`, http.StatusBadRequest},
		{"no_destination", `{"type":"income","source":"manual","amount":1}`, http.StatusBadRequest},
		{"bad_date", `{"type":"income","source":"manual","amount":1,"destination":"Caja","occurredAt":"04/01/2026"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/admin/finance-transactions", tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
