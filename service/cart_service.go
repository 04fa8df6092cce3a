package service

import (
	"context"
	"errors"
	"fmt"

	"mostrador-pos/cart"
	"mostrador-pos/models"
	"mostrador-pos/repository"
	"mostrador-pos/session"

	"go.uber.org/zap"
)

// ErrItemNotFound is returned when a line id is not in the cart.
var ErrItemNotFound = errors.New("item not found in cart")

// ProductSource looks up the current price and stock of a product.
type ProductSource interface {
	GetSnapshot(ctx context.Context, productID int64) (cart.ProductSnapshot, error)
}

// CartService runs cart mutations against stored sessions and shapes the
// responses the counter screen shows.
type CartService struct {
	sessions *session.Manager
	products ProductSource
	log      *zap.SugaredLogger
}

// NewCartService creates a new CartService
func NewCartService(sessions *session.Manager, products ProductSource, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{sessions: sessions, products: products, log: logger.Sugar()}
}

// Ensure CartService implements CartServiceInterface
var _ CartServiceInterface = (*CartService)(nil)

func (s *CartService) Start(ctx context.Context, req *models.StartSessionRequest) (*models.CartResponse, error) {
	sess, err := s.sessions.Start(ctx, req.Cashier)
	if err != nil {
		return nil, err
	}
	_, c, err := s.sessions.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, nil), nil
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	sess, c, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, nil), nil
}

func (s *CartService) Discard(ctx context.Context, sessionID string) error {
	return s.sessions.Discard(ctx, sessionID)
}

// AddItem reads the product's current price and stock and adds it to the cart.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error) {
	s.log.Infof("🛒 AddItem: session=%s product=%d qty=%d", sessionID, req.ProductID, req.Quantity)

	product, err := s.products.GetSnapshot(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	var res cart.Result
	sess, c, err := s.sessions.Update(ctx, sessionID, func(c *cart.Cart) error {
		var err error
		res, err = c.AddItem(product, req.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, warningsFor(res)), nil
}

// SetQuantity changes the quantity of a line; zero or less removes it.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*models.CartResponse, error) {
	var res cart.Result
	sess, c, err := s.sessions.Update(ctx, sessionID, func(c *cart.Cart) error {
		res = c.SetQuantity(itemID, quantity)
		if !res.Found() {
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, warningsFor(res)), nil
}

// RemoveItem drops a line. Removing a line that is not there succeeds.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartResponse, error) {
	sess, c, err := s.sessions.Update(ctx, sessionID, func(c *cart.Cart) error {
		c.RemoveItem(itemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, nil), nil
}

func (s *CartService) SetLineDiscount(ctx context.Context, sessionID, itemID string, amount int64) (*models.CartResponse, error) {
	sess, c, err := s.sessions.Update(ctx, sessionID, func(c *cart.Cart) error {
		res, err := c.SetLineDiscount(itemID, amount)
		if err != nil {
			return err
		}
		if !res.Found() {
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, nil), nil
}

func (s *CartService) SetCartDiscount(ctx context.Context, sessionID string, amount int64) (*models.CartResponse, error) {
	sess, c, err := s.sessions.Update(ctx, sessionID, func(c *cart.Cart) error {
		return c.SetCartDiscount(amount)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sess, c, nil), nil
}

// RefreshStock re-reads the stock of every product in the cart, so lines
// sold at another counter meanwhile are clamped or dropped before checkout.
func (s *CartService) RefreshStock(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	_, current, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	type productStock struct {
		productID int64
		available int
	}
	var stock []productStock
	seen := make(map[int64]bool)
	for _, item := range current.Items() {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true

		snap, err := s.products.GetSnapshot(ctx, item.ProductID)
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			stock = append(stock, productStock{productID: item.ProductID})
		case err != nil:
			return nil, fmt.Errorf("failed to refresh product %d: %w", item.ProductID, err)
		default:
			stock = append(stock, productStock{productID: item.ProductID, available: snap.AvailableStock})
		}
	}

	var warnings []models.CartWarning
	sess, c, err := s.sessions.Update(ctx, sessionID, func(c *cart.Cart) error {
		warnings = nil
		for _, p := range stock {
			for _, res := range c.UpdateStock(p.productID, p.available) {
				switch res.Outcome {
				case cart.OutcomeClamped:
					warnings = append(warnings, models.CartWarning{ItemID: res.ItemID, Code: models.WarningStockLimitReached, Quantity: res.Quantity})
				case cart.OutcomeRemoved:
					warnings = append(warnings, models.CartWarning{ItemID: res.ItemID, Code: models.WarningSoldOut})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof("🔄 RefreshStock: session=%s products=%d warnings=%d", sessionID, len(stock), len(warnings))
	return toResponse(sess, c, warnings), nil
}

func toResponse(sess *session.Session, c *cart.Cart, warnings []models.CartWarning) *models.CartResponse {
	return &models.CartResponse{
		SessionID:    sess.ID,
		Cashier:      sess.Cashier,
		StartedAt:    sess.StartedAt,
		Currency:     c.Currency().Code,
		TaxRate:      c.TaxRate().String(),
		Items:        c.Items(),
		CartDiscount: c.CartDiscount(),
		Totals:       c.Totals(),
		Warnings:     warnings,
	}
}

func warningsFor(res cart.Result) []models.CartWarning {
	if !res.StockLimitReached() {
		return nil
	}
	return []models.CartWarning{{ItemID: res.ItemID, Code: models.WarningStockLimitReached, Quantity: res.Quantity}}
}
