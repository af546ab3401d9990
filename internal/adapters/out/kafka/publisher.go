// Package kafka publishes order status changes to a Kafka topic. Writes go through
// a circuit breaker so a dead broker fails fast instead of stalling every commit.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

var ErrPublisherUnavailable = errors.New("order event publisher is unavailable")

const (
	defaultBreakerTimeout   = 30 * time.Second
	defaultFailureThreshold = 5
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers []string
	Topic   string

	// FailureThreshold consecutive failed writes open the breaker for BreakerTimeout.
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

type Publisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewPublisher creates a synchronous writer for cfg.Topic.
func NewPublisher(cfg Config, logger *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(writer, cfg, logger)
}

func NewPublisherWithWriter(writer MessageWriter, cfg Config, logger *slog.Logger) *Publisher {
	logger = logger.With(slog.String("component", "kafka_publisher"))

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = defaultFailureThreshold
	}
	timeout := cfg.BreakerTimeout
	if timeout == 0 {
		timeout = defaultBreakerTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka:" + cfg.Topic,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Publisher{
		writer:  writer,
		breaker: breaker,
		logger:  logger,
	}
}

type statusChangedMessage struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	CourierID  *string   `json:"courierId,omitempty"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PublishOrderStatusChanged writes all events in one batch. Messages are keyed by
// order id so the changes of one order stay in order on a partition.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, events ...order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, msgs...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrPublisherUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("write %d order events: %w", len(msgs), err)
	}

	p.logger.DebugContext(ctx, "order events published", slog.Int("events", len(msgs)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(e order.StatusChanged) (kafka.Message, error) {
	payload := statusChangedMessage{
		EventID:    e.EventID.String(),
		OrderID:    e.OrderID.String(),
		From:       e.From.String(),
		To:         e.To.String(),
		OccurredAt: e.OccurredAt,
	}
	if e.CourierID != nil {
		courierID := e.CourierID.String()
		payload.CourierID = &courierID
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s: %w", e.EventName(), err)
	}

	return kafka.Message{
		Key:   []byte(payload.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.EventName())},
			{Key: "event-id", Value: []byte(payload.EventID)},
		},
		Time: e.OccurredAt,
	}, nil
}
