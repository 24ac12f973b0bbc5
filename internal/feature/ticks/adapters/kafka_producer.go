// Package adapters contains the Kafka transport for bid/ask events.
package adapters

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"candle_backend/internal/feature/ticks/domain/entity"
)

// TickProducer publishes bid/ask events to the tick topic, keyed by symbol so
// that every tick for one symbol lands on the same partition.
type TickProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewTickProducer creates a producer for the given brokers and topic.
func NewTickProducer(brokers []string, topic string, logger *zap.Logger) *TickProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &TickProducer{writer: writer, logger: logger}
}

// Send publishes one event.
func (p *TickProducer) Send(ctx context.Context, ev entity.BidAskEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Symbol),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *TickProducer) Close() error {
	return p.writer.Close()
}
