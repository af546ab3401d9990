package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

var (
	ErrOrderHasNoCourier    = errors.New("assigned order has no courier")
	ErrOrderCourierNotFound = errors.New("courier of assigned order not found")
)

// MoveCouriersCommandHandler runs the movement cycle.
//
// Orders are processed one after another. Each courier steps toward its order;
// on arrival the order is completed and the courier's storage place is freed.
// An order without a courier or with a missing courier record aborts the whole
// cycle and nothing is written. On success there is exactly one commit.
type MoveCouriersCommandHandler struct {
	uowFactory UoWFactory
}

func NewMoveCouriersCommandHandler(uowFactory UoWFactory) MoveCouriersCommandHandler {
	return MoveCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MoveCouriersCommandHandler) Handle(ctx context.Context, cmd MoveCouriersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetAllInAssignedStatus(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	for _, o := range orders {
		courierID := o.CourierID()
		if courierID == nil {
			return fmt.Errorf("%w: order %s", ErrOrderHasNoCourier, o.ID())
		}

		c, courierErr := courierRepo.Get(ctx, *courierID)
		if courierErr != nil {
			return courierErr
		}
		if c == nil {
			return fmt.Errorf("%w: order %s, courier %s", ErrOrderCourierNotFound, o.ID(), courierID)
		}

		if err = step(o, c); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// step moves c one tick toward o and completes the delivery on arrival.
func step(o *order.Order, c *courier.Courier) error {
	if err := c.Move(o.Location()); err != nil {
		return err
	}

	arrived, err := c.IsAt(o.Location())
	if err != nil || !arrived {
		return err
	}

	if err = o.Complete(); err != nil {
		return err
	}

	return c.CompleteOrder(o)
}
