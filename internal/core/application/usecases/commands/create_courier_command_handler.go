package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateCourierCommandHandler registers a courier with the default bag and returns its id.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	c, err := courier.NewCourier(cmd.Name(), cmd.Speed(), cmd.Location())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return c.ID(), nil
}
