package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mostrador-pos/cart"
	"mostrador-pos/models"

	"go.uber.org/zap"
)

// ProductRepository handles stock lookups and stock receipts on the items table
type ProductRepository struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{db: db, log: sugar(logger)}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// GetSnapshot reads the price and sellable stock of an active item, ready to
// be copied into a cart line.
func (r *ProductRepository) GetSnapshot(ctx context.Context, productID int64) (cart.ProductSnapshot, error) {
	query := `
		SELECT id, name, sku, COALESCE(size, ''), price, stock_total, stock_reserved, is_active
		FROM items
		WHERE id = $1
	`

	var item models.Item
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&item.ID,
		&item.Name,
		&item.SKU,
		&item.Size,
		&item.Price,
		&item.StockTotal,
		&item.StockReserved,
		&item.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Infof("❌ GetSnapshot: product not found: id=%d", productID)
		return cart.ProductSnapshot{}, ErrProductNotFound
	}
	if err != nil {
		r.log.Errorf("❌ GetSnapshot: Error fetching product %d: %v", productID, err)
		return cart.ProductSnapshot{}, fmt.Errorf("failed to fetch product: %w", err)
	}
	if !item.IsActive {
		r.log.Infof("❌ GetSnapshot: product %d is inactive", productID)
		return cart.ProductSnapshot{}, ErrProductNotFound
	}

	return cart.ProductSnapshot{
		ProductID:      item.ID,
		Name:           item.Name,
		SKU:            item.SKU,
		Variant:        item.Size,
		UnitPrice:      item.Price,
		AvailableStock: item.Available(),
	}, nil
}

// AddStock receives quantity new units of an active item
func (r *ProductRepository) AddStock(ctx context.Context, productID int64, quantity int) (*models.AddStockResponse, error) {
	r.log.Infof("📦 AddStock: product_id=%d, quantity=%d", productID, quantity)

	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	query := `
		UPDATE items
		SET stock_total = stock_total + $1
		WHERE id = $2 AND is_active = true
		RETURNING id, sku, COALESCE(size, ''), price, stock_total, stock_reserved
	`

	var response models.AddStockResponse
	err := r.db.QueryRowContext(ctx, query, quantity, productID).Scan(
		&response.ID,
		&response.SKU,
		&response.Size,
		&response.Price,
		&response.StockTotal,
		&response.StockReserved,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		r.log.Errorf("❌ AddStock: Error updating stock: %v", err)
		return nil, fmt.Errorf("failed to add stock: %w", err)
	}

	r.log.Infof("✅ AddStock: id=%d, sku=%s, stock_total=%d", response.ID, response.SKU, response.StockTotal)
	return &response, nil
}

func sugar(logger *zap.Logger) *zap.SugaredLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
