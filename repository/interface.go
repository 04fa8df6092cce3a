package repository

import (
	"context"

	"mostrador-pos/cart"
	"mostrador-pos/models"
)

// ProductRepositoryInterface defines the contract for product stock operations
type ProductRepositoryInterface interface {
	GetSnapshot(ctx context.Context, productID int64) (cart.ProductSnapshot, error)
	AddStock(ctx context.Context, productID int64, quantity int) (*models.AddStockResponse, error)
}

// SaleRepositoryInterface defines the contract for sale operations
type SaleRepositoryInterface interface {
	Record(ctx context.Context, params *models.RecordSaleParams) (*models.SaleDetail, error)
	GetByID(ctx context.Context, saleID int64) (*models.SaleDetail, error)
	List(ctx context.Context, from, to *string) ([]models.SaleListItem, error)
}

// FinanceTransactionRepositoryInterface defines the contract for ledger operations
type FinanceTransactionRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateFinanceTransactionRequest) (*models.FinanceTransaction, error)
}
