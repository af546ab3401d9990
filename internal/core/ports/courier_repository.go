// Package ports defines the contracts the application layer needs from the outside
// world: repositories, the unit of work that groups them, and the event publisher.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository stores courier aggregates together with their storage places.
type CourierRepository interface {
	// Add registers a new courier with the unit of work. Nothing is written before Commit.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update marks a courier as changed. Nothing is written before Commit.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get returns the courier or nil, nil when no courier has that id.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// FindAllFree returns every courier whose storage places are all empty.
	// An empty slice means nobody is free.
	FindAllFree(ctx context.Context) ([]*courier.Courier, error)
}
