package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/minikart-next/minikart/internal/config"
	"github.com/minikart-next/minikart/internal/constants"
	"github.com/minikart-next/minikart/internal/logger"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is the message published on the order stream.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	BuyerID    uint      `json:"buyer_id"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher writes order events to the stream. A disabled publisher drops
// events silently so order placement never depends on the broker.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates an order event publisher.
func NewPublisher(cfg *config.KafkaConfig) *Publisher {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		return &Publisher{}
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "minikart.orders"
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Enabled reports whether events reach a broker.
func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}

// OrderCreated publishes the order-created event.
func (p *Publisher) OrderCreated(ctx context.Context, event OrderEvent) {
	event.Type = constants.EventOrderCreated
	p.publish(ctx, event)
}

// OrderStatusChanged publishes the status transition event.
func (p *Publisher) OrderStatusChanged(ctx context.Context, event OrderEvent) {
	event.Type = constants.EventOrderStatusChanged
	p.publish(ctx, event)
}

func (p *Publisher) publish(ctx context.Context, event OrderEvent) {
	if !p.Enabled() {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Warnw("order_event_marshal_failed", "type", event.Type, "error", err)
		return
	}
	message := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: data,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		logger.Warnw("order_event_publish_failed", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
