// Package events announces finished sales on Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"mostrador-pos/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventSaleCompleted = "sale.completed"
	AggregateSale      = "sale"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SaleCompleted is the payload of a sale.completed event.
type SaleCompleted struct {
	SaleID     int64                `json:"saleId"`
	SessionID  string               `json:"sessionId"`
	Cashier    string               `json:"cashier"`
	SoldAt     time.Time            `json:"soldAt"`
	Currency   string               `json:"currency"`
	Total      int64                `json:"total"`
	Tax        int64                `json:"tax"`
	Lines      []models.SaleLine    `json:"lines"`
	Payments   []models.SalePayment `json:"payments"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// Publisher writes sale events. A Publisher without a writer drops every
// event, which is how the shop runs when KAFKA_BROKERS is empty.
type Publisher struct {
	writer MessageWriter
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewPublisher wraps writer. writer may be nil.
func NewPublisher(writer MessageWriter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{writer: writer, log: logger.Sugar(), now: time.Now}
}

// NewKafkaWriter builds the writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Enabled reports whether events actually leave the process.
func (p *Publisher) Enabled() bool { return p.writer != nil }

// PublishSaleCompleted publishes sale keyed by its id so all events of a
// sale land on the same partition.
func (p *Publisher) PublishSaleCompleted(ctx context.Context, sale *models.SaleDetail) error {
	if !p.Enabled() {
		return nil
	}

	payload, err := json.Marshal(SaleCompleted{
		SaleID:     sale.ID,
		SessionID:  sale.SessionID,
		Cashier:    sale.Cashier,
		SoldAt:     sale.SoldAt,
		Currency:   sale.Currency,
		Total:      sale.Total,
		Tax:        sale.Tax,
		Lines:      sale.Lines,
		Payments:   sale.Payments,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode sale event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(sale.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventSaleCompleted)},
			{Key: "aggregate_type", Value: []byte(AggregateSale)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish sale %d: %w", sale.ID, err)
	}

	p.log.Infof("📤 Published %s for sale %d", EventSaleCompleted, sale.ID)
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
