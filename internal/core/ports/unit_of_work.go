package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command invocation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups the repositories used by one business operation.
//
// Repositories only record which aggregates were added or changed. Commit writes
// all of them atomically and then publishes the domain events they recorded;
// Rollback forgets them. Calling Rollback after a successful Commit is a no-op,
// so handlers can always defer it.
type UnitOfWork interface {
	CourierRepository() CourierRepository
	OrderRepository() OrderRepository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
