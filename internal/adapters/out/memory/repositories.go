package memory

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

type courierRepository struct {
	uow *UnitOfWork
}

func (r *courierRepository) Add(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.track(aggregate.ID(), aggregate, true)
	return nil
}

func (r *courierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.track(aggregate.ID(), aggregate, false)
	return nil
}

func (r *courierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if c, ok := r.tracked(id); ok {
		return c, nil
	}

	rec, ok := r.uow.store.courier(id)
	if !ok {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	return rec.restore()
}

func (r *courierRepository) FindAllFree(_ context.Context) ([]*courier.Courier, error) {
	records := r.uow.store.allCouriers()
	free := make([]*courier.Courier, 0, len(records))

	for _, rec := range records {
		c, ok := r.tracked(rec.id)
		if !ok {
			restored, err := rec.restore()
			if err != nil {
				return nil, err
			}
			c = restored
		}
		if c.IsFree() {
			free = append(free, c)
		}
	}

	return free, nil
}

func (r *courierRepository) tracked(id kernel.UUID) (*courier.Courier, bool) {
	aggregate, ok := r.uow.lookup(id)
	if !ok {
		return nil, false
	}
	c, ok := aggregate.(*courier.Courier)
	return c, ok
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.track(aggregate.ID(), aggregate, true)
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.track(aggregate.ID(), aggregate, false)
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if o, ok := r.tracked(id); ok {
		return o, nil
	}

	rec, ok := r.uow.store.order(id)
	if !ok {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	return rec.restore()
}

func (r *orderRepository) GetOldestInCreatedStatus(ctx context.Context) (*order.Order, error) {
	orders, err := r.inStatus(ctx, order.Created)
	if err != nil || len(orders) == 0 {
		return nil, err
	}
	return orders[0], nil
}

func (r *orderRepository) GetAllInAssignedStatus(ctx context.Context) ([]*order.Order, error) {
	return r.inStatus(ctx, order.Assigned)
}

func (r *orderRepository) inStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	records := r.uow.store.ordersInStatus(status)
	orders := make([]*order.Order, 0, len(records))

	for _, rec := range records {
		o, ok := r.tracked(rec.id)
		if !ok {
			restored, err := rec.restore()
			if err != nil {
				return nil, err
			}
			o = restored
		}
		if o.Status() == status {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

func (r *orderRepository) tracked(id kernel.UUID) (*order.Order, bool) {
	aggregate, ok := r.uow.lookup(id)
	if !ok {
		return nil, false
	}
	o, ok := aggregate.(*order.Order)
	return o, ok
}
