// Package checkout turns an open sale session into a recorded sale.
package checkout

import (
	"context"
	"fmt"

	"mostrador-pos/cart"
	"mostrador-pos/models"
	"mostrador-pos/session"

	"go.uber.org/zap"
)

// SaleRecorder persists a finished sale and deducts its stock.
type SaleRecorder interface {
	Record(ctx context.Context, params *models.RecordSaleParams) (*models.SaleDetail, error)
}

// EventPublisher announces finished sales to other systems.
type EventPublisher interface {
	PublishSaleCompleted(ctx context.Context, sale *models.SaleDetail) error
}

// Sessions is the part of session.Manager checkout needs.
type Sessions interface {
	Finish(ctx context.Context, id string, fn func(s *session.Session, c *cart.Cart) error) error
}

type Service struct {
	sessions  Sessions
	recorder  SaleRecorder
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

func NewService(sessions Sessions, recorder SaleRecorder, publisher EventPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions:  sessions,
		recorder:  recorder,
		publisher: publisher,
		logger:    logger.Sugar(),
	}
}

// Checkout finalizes the sale of sessionID. The cart is frozen into a
// snapshot, the tenders are matched against its total and the sale is
// recorded. On success the session is closed; on any error it stays open
// untouched so the cashier can fix the cart or the payment and retry.
func (s *Service) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.SaleDetail, error) {
	s.logger.Infof("💰 Checkout: session=%s tenders=%d", sessionID, len(req.Payments))

	var sale *models.SaleDetail
	err := s.sessions.Finish(ctx, sessionID, func(sess *session.Session, c *cart.Cart) error {
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		snap := c.Snapshot()

		payment, err := ComputePayment(snap.Totals.Total, req.Payments)
		if err != nil {
			return err
		}
		if !payment.Settled() {
			return fmt.Errorf("%w: %d remaining", ErrInsufficientPayment, payment.Remaining)
		}

		sale, err = s.recorder.Record(ctx, &models.RecordSaleParams{
			SessionID:    sess.ID,
			Cashier:      sess.Cashier,
			CustomerName: req.CustomerName,
			Notes:        req.Notes,
			Snapshot:     snap,
			Payments:     req.Payments,
			AmountPaid:   payment.Paid,
			ChangeDue:    payment.ChangeDue,
		})
		if err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}
		c.Clear()
		return nil
	})
	if err != nil {
		s.logger.Errorf("❌ Checkout: session=%s: %v", sessionID, err)
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSaleCompleted(ctx, sale); err != nil {
			s.logger.Warnf("⚠️ Checkout: sale %d recorded but event not published: %v", sale.ID, err)
		}
	}

	s.logger.Infof("✅ Checkout: session=%s sale=%d total=%d change=%d", sessionID, sale.ID, sale.Total, sale.ChangeDue)
	return sale, nil
}
