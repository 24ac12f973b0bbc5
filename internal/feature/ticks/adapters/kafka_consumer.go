package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"candle_backend/internal/feature/ticks/domain/entity"
)

// EventHandler processes one decoded bid/ask event.
type EventHandler interface {
	OnEvent(ctx context.Context, ev entity.BidAskEvent) error
}

// TickConsumer reads bid/ask events from the tick topic as part of a consumer
// group and hands them to the aggregation fan-out.
type TickConsumer struct {
	reader  *kafka.Reader
	handler EventHandler
	logger  *zap.Logger
}

// NewTickConsumer creates a consumer-group reader for the given brokers,
// topic and group.
func NewTickConsumer(brokers []string, topic, group string, handler EventHandler, logger *zap.Logger) *TickConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  group,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &TickConsumer{reader: reader, handler: handler, logger: logger}
}

// Run consumes until ctx is cancelled. Offsets are committed after the
// fan-out completes, so delivery is at-least-once; the aggregation tolerates
// the resulting duplicates. A failed unit of work is logged, not redelivered:
// an exhausted retry budget or a malformed payload must not wedge the
// partition.
func (c *TickConsumer) Run(ctx context.Context) {
	c.logger.Info("tick consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group", c.reader.Config().GroupID))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				c.logger.Info("tick consumer stopped")
				return
			}
			c.logger.Error("fetch message failed", zap.Error(err))
			continue
		}

		ev, err := decodeEvent(msg.Value)
		if err != nil {
			c.logger.Error("dropping malformed bid/ask event",
				zap.Error(err),
				zap.Int64("offset", msg.Offset),
				zap.Int("partition", msg.Partition))
		} else if err := c.handler.OnEvent(ctx, ev); err != nil {
			c.logger.Error("event handling failed",
				zap.String("symbol", ev.Symbol),
				zap.Error(err))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", zap.Error(err))
		}
	}
}

// Close closes the underlying reader.
func (c *TickConsumer) Close() error {
	return c.reader.Close()
}

func decodeEvent(value []byte) (entity.BidAskEvent, error) {
	var ev entity.BidAskEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return entity.BidAskEvent{}, fmt.Errorf("decode bid/ask event: %w", err)
	}
	if ev.Symbol == "" {
		return entity.BidAskEvent{}, fmt.Errorf("decode bid/ask event: empty symbol")
	}
	return ev, nil
}
