package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAddCourierStorageCommandIsNotConstructed = errs.NewValueIsRequiredError("AddCourierStorageCommand")

// AddCourierStorageCommand gives an existing courier one more storage place.
type AddCourierStorageCommand struct { //nolint:recvcheck // pointer receivers only on private setters
	courierID   kernel.UUID
	name        string
	totalVolume kernel.Volume

	guard guard.ConstructorGuard
}

func NewAddCourierStorageCommand(
	courierID kernel.UUID,
	name string,
	totalVolume int,
) (AddCourierStorageCommand, error) {
	cmd := AddCourierStorageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setTotalVolume(totalVolume),
	); err != nil {
		return AddCourierStorageCommand{}, err
	}

	return cmd, nil
}

func (c AddCourierStorageCommand) Validate() error {
	return c.guard.Validate(ErrAddCourierStorageCommandIsNotConstructed)
}

func (c AddCourierStorageCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c AddCourierStorageCommand) Name() string {
	return c.name
}

func (c AddCourierStorageCommand) TotalVolume() kernel.Volume {
	return c.totalVolume
}

func (c *AddCourierStorageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	c.courierID = courierID
	return nil
}

func (c *AddCourierStorageCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *AddCourierStorageCommand) setTotalVolume(totalVolume int) error {
	v, err := kernel.NewVolume(totalVolume)
	if err != nil {
		return err
	}
	c.totalVolume = v
	return nil
}
