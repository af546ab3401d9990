package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository stores order aggregates.
type OrderRepository interface {
	// Add registers a new order with the unit of work. Nothing is written before Commit.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update marks an order as changed. Nothing is written before Commit.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or nil, nil when no order has that id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOldestInCreatedStatus returns the Created order that was added first,
	// or nil, nil when there is none.
	GetOldestInCreatedStatus(ctx context.Context) (*order.Order, error)

	// GetAllInAssignedStatus returns every Assigned order, oldest first.
	GetAllInAssignedStatus(ctx context.Context) ([]*order.Order, error)
}
