package service

import (
	"context"

	"mostrador-pos/models"
)

// CartServiceInterface defines the contract for the counter's sale sessions
type CartServiceInterface interface {
	Start(ctx context.Context, req *models.StartSessionRequest) (*models.CartResponse, error)
	Get(ctx context.Context, sessionID string) (*models.CartResponse, error)
	Discard(ctx context.Context, sessionID string) error
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error)
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartResponse, error)
	SetLineDiscount(ctx context.Context, sessionID, itemID string, amount int64) (*models.CartResponse, error)
	SetCartDiscount(ctx context.Context, sessionID string, amount int64) (*models.CartResponse, error)
	RefreshStock(ctx context.Context, sessionID string) (*models.CartResponse, error)
}
