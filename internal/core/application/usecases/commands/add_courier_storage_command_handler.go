package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

type AddCourierStorageCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewAddCourierStorageCommandHandler(uowFactory CourierUoWFactory) AddCourierStorageCommandHandler {
	return AddCourierStorageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with *errs.ObjectNotFoundError when the courier does not exist.
func (h AddCourierStorageCommandHandler) Handle(ctx context.Context, cmd AddCourierStorageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if c == nil {
		return errs.NewObjectNotFoundError("courier", cmd.CourierID())
	}

	if err = c.AddStoragePlace(cmd.Name(), cmd.TotalVolume()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
