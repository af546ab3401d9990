// Package postgres stores aggregates in PostgreSQL through GORM.
//
// Repositories created by a GormUnitOfWork never write on their own. Add and
// Update record the aggregate with the unit of work, and Commit writes all of
// them in one database transaction:
//
//	uow := factory.Create()
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// After the transaction commits, the status events recorded by the tracked orders
// are handed to the configured EventPublisher. A failed publish is logged and does
// not undo the commit.
//
// A unit of work is not safe for concurrent use; create one per operation.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate waiting to be written on Commit.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
	IsNew     bool
}

type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory returns a factory whose units of work write through db
// and publish committed order events to publisher.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
		index:     make(map[kernel.UUID]int),
	}
}

// GormUnitOfWork collects changed aggregates and writes them in one transaction.
type GormUnitOfWork struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger

	tracked []trackedAggregate
	index   map[kernel.UUID]int
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.db, uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.db, uow)
}

// Track records aggregate for the next Commit. An aggregate added and later
// updated in the same unit stays an insert.
func (uow *GormUnitOfWork) Track(id kernel.UUID, aggregate any, isNew bool) {
	if i, ok := uow.index[id]; ok {
		uow.tracked[i].Aggregate = aggregate
		uow.tracked[i].IsNew = uow.tracked[i].IsNew || isNew
		return
	}

	uow.index[id] = len(uow.tracked)
	uow.tracked = append(uow.tracked, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
		IsNew:     isNew,
	})
}

// Tracked returns the aggregate recorded under id, if any.
func (uow *GormUnitOfWork) Tracked(id kernel.UUID) (any, bool) {
	i, ok := uow.index[id]
	if !ok {
		return nil, false
	}
	return uow.tracked[i].Aggregate, true
}

// Commit writes every tracked aggregate in one transaction, in the order they were
// first tracked, then publishes the recorded order events. With nothing tracked it
// is a no-op.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if len(uow.tracked) == 0 {
		return nil
	}

	err := uow.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range uow.tracked {
			if err := persist(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	events := uow.drainEvents()
	uow.reset()

	if len(events) > 0 && uow.publisher != nil {
		if pubErr := uow.publisher.PublishOrderStatusChanged(ctx, events...); pubErr != nil {
			uow.logger.ErrorContext(ctx, "failed to publish order events",
				slog.Int("events", len(events)),
				slog.String("error", pubErr.Error()),
			)
		}
	}

	return nil
}

// Rollback forgets every tracked aggregate. Nothing has been written yet, so the
// database is left untouched.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.reset()
	return nil
}

func (uow *GormUnitOfWork) reset() {
	uow.tracked = nil
	uow.index = make(map[kernel.UUID]int)
}

func (uow *GormUnitOfWork) drainEvents() []order.StatusChanged {
	var events []order.StatusChanged
	for _, entry := range uow.tracked {
		o, ok := entry.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		events = append(events, o.Events()...)
		o.ClearEvents()
	}
	return events
}

func persist(ctx context.Context, tx *gorm.DB, entry trackedAggregate) error {
	switch aggregate := entry.Aggregate.(type) {
	case *courier.Courier:
		return courierrepo.Persist(ctx, tx, aggregate, entry.IsNew)
	case *order.Order:
		return orderrepo.Persist(ctx, tx, aggregate, entry.IsNew)
	default:
		return fmt.Errorf("unsupported aggregate %T with id %s", aggregate, entry.ID)
	}
}
