// Package kafka provides a bounded Kafka topic reader backed by
// segmentio/kafka-go. Messages are dispatched to a pluggable
// MessageHandler callback; the drain stops once the topic goes quiet.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/searchcore/invindex/pkg/config"
)

// MessageHandler is a callback invoked for each Kafka message.
type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Reader drains a topic from the earliest offset and hands each message
// to a MessageHandler.
type Reader struct {
	reader  *kafka.Reader
	logger  *slog.Logger
	maxWait time.Duration
}

// NewReader creates a Reader for the configured topic.
func NewReader(cfg config.KafkaConfig) *Reader {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     cfg.MaxWait,
		StartOffset: kafka.FirstOffset,
	})

	maxWait := cfg.MaxWait
	if maxWait <= 0 {
		maxWait = time.Second
	}

	return &Reader{
		reader:  r,
		logger:  slog.Default().With("component", "kafka-reader", "topic", cfg.Topic),
		maxWait: maxWait,
	}
}

// Drain fetches messages until none arrive within the configured wait
// window, then returns. A handler error aborts the drain immediately.
func (r *Reader) Drain(ctx context.Context, handle MessageHandler) error {
	r.logger.Info("drain started")
	var consumed int
	for {
		fetchCtx, cancel := context.WithTimeout(ctx, 2*r.maxWait)
		msg, err := r.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				r.logger.Info("drain finished", "messages", consumed)
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}
		r.logger.Debug("message received",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"value_size", len(msg.Value),
		)
		if err := handle(ctx, msg.Key, msg.Value); err != nil {
			return err
		}
		if err := r.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("committing offset: %w", err)
		}
		consumed++
	}
}

// Close closes the underlying Kafka reader.
func (r *Reader) Close() error {
	return r.reader.Close()
}
