package memory

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type trackedAggregate struct {
	id        kernel.UUID
	aggregate any
	isNew     bool
}

type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
		index:     make(map[kernel.UUID]int),
	}
}

// UnitOfWork tracks changed aggregates until Commit copies them into the Store.
// It is not safe for concurrent use.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger

	tracked []trackedAggregate
	index   map[kernel.UUID]int
}

func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &courierRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) track(id kernel.UUID, aggregate any, isNew bool) {
	if i, ok := uow.index[id]; ok {
		uow.tracked[i].aggregate = aggregate
		uow.tracked[i].isNew = uow.tracked[i].isNew || isNew
		return
	}

	uow.index[id] = len(uow.tracked)
	uow.tracked = append(uow.tracked, trackedAggregate{id: id, aggregate: aggregate, isNew: isNew})
}

func (uow *UnitOfWork) lookup(id kernel.UUID) (any, bool) {
	i, ok := uow.index[id]
	if !ok {
		return nil, false
	}
	return uow.tracked[i].aggregate, true
}

// Commit checks every tracked aggregate against the Store and applies all of them
// or none. Order events are published once the Store is updated.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if len(uow.tracked) == 0 {
		return nil
	}

	if err := uow.apply(); err != nil {
		return err
	}

	events := make([]order.StatusChanged, 0)
	for _, entry := range uow.tracked {
		if o, ok := entry.aggregate.(*order.Order); ok {
			events = append(events, o.Events()...)
			o.ClearEvents()
		}
	}
	uow.reset()

	if len(events) > 0 && uow.publisher != nil {
		if err := uow.publisher.PublishOrderStatusChanged(ctx, events...); err != nil {
			uow.logger.ErrorContext(ctx, "failed to publish order events",
				slog.Int("events", len(events)),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func (uow *UnitOfWork) apply() error {
	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range uow.tracked {
		if err := s.checkLocked(entry); err != nil {
			return err
		}
	}

	for _, entry := range uow.tracked {
		switch aggregate := entry.aggregate.(type) {
		case *courier.Courier:
			rec := courierSnapshot(aggregate)
			rec.seq = s.seqFor(entry, s.couriers[entry.id].seq)
			s.couriers[entry.id] = rec
		case *order.Order:
			rec := orderSnapshot(aggregate)
			rec.seq = s.seqFor(entry, s.orders[entry.id].seq)
			s.orders[entry.id] = rec
		}
	}

	return nil
}

// checkLocked reports conflicts for one entry. s.mu must be held.
func (s *Store) checkLocked(entry trackedAggregate) error {
	var exists bool
	var kind string

	switch entry.aggregate.(type) {
	case *courier.Courier:
		_, exists = s.couriers[entry.id]
		kind = "courier"
	case *order.Order:
		_, exists = s.orders[entry.id]
		kind = "order"
	default:
		return fmt.Errorf("unsupported aggregate %T with id %s", entry.aggregate, entry.id)
	}

	switch {
	case entry.isNew && exists:
		return errs.NewAlreadyExistsError(kind, entry.id)
	case !entry.isNew && !exists:
		return errs.NewObjectNotFoundError(kind, entry.id)
	}
	return nil
}

func (s *Store) seqFor(entry trackedAggregate, current int64) int64 {
	if !entry.isNew {
		return current
	}
	s.seq++
	return s.seq
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.reset()
	return nil
}

func (uow *UnitOfWork) reset() {
	uow.tracked = nil
	uow.index = make(map[kernel.UUID]int)
}
