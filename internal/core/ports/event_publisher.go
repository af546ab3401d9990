package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// EventPublisher delivers order events to other services after they are committed.
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, events ...order.StatusChanged) error
}
