package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/services"
)

// ErrNoFreeCouriersFound fails the assignment cycle when an order waits but every
// courier is busy. It is returned, not swallowed, so the scheduler reports it.
var ErrNoFreeCouriersFound = errors.New("no free couriers found")

// AssignCourierCommandHandler runs the assignment cycle.
//
// Outcomes:
//   - no Created order: nothing happens, nil is returned
//   - no free courier: ErrNoFreeCouriersFound, nothing is written
//   - no free courier can carry the order: nothing happens, the order stays Created
//   - otherwise the order and the chosen courier are updated in one commit
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, services.NewOrderDispatcher())
//	switch err := handler.Handle(ctx, NewAssignCourierCommand()); {
//	case errors.Is(err, ErrNoFreeCouriersFound):
//	    log.Println("all couriers are busy")
//	case err != nil:
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
}

func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.OrderDispatcher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetOldestInCreatedStatus(ctx)
	if err != nil {
		return err
	}
	if o == nil {
		return nil
	}

	couriers, err := courierRepo.FindAllFree(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return fmt.Errorf("%w: order %s is waiting", ErrNoFreeCouriersFound, o.ID())
	}

	chosen, err := h.dispatcher.Dispatch(o, couriers)
	if err != nil {
		return err
	}
	if chosen == nil {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, chosen); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
