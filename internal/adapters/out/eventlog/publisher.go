// Package eventlog publishes order events to a structured log. It stands in for
// the Kafka publisher when no broker is configured and in the simulator.
package eventlog

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With(slog.String("component", "eventlog"))}
}

func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, events ...order.StatusChanged) error {
	for _, e := range events {
		attrs := []slog.Attr{
			slog.String("event", e.EventName()),
			slog.String("order_id", e.OrderID.String()),
			slog.String("from", e.From.String()),
			slog.String("to", e.To.String()),
		}
		if e.CourierID != nil {
			attrs = append(attrs, slog.String("courier_id", e.CourierID.String()))
		}
		p.logger.LogAttrs(ctx, slog.LevelInfo, "order status changed", attrs...)
	}
	return nil
}
