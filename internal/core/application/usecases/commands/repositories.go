// Package commands contains the operations that change state: the assignment and
// movement cycles plus order and courier registration.
//
// Every handler follows the same shape: validate the command, create a unit of
// work, defer Rollback, load and mutate aggregates, mark them with Add/Update,
// and Commit once at the end.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of work interfaces narrowed to what each handler uses.
type (
	// TxManager ends a unit of work. Rollback after Commit is a no-op.
	TxManager interface {
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is used by commands that only touch couriers.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans both aggregates and is used by the dispatch cycles.
	//
	// Example:
	//   uow := factory.Create()
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetOldestInCreatedStatus(ctx)
	//   // ... mutate, then Update the changed aggregates
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
