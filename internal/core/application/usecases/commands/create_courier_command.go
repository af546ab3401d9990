package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errs.NewValueIsRequiredError("CreateCourierCommand")

// CreateCourierCommand registers a courier at a starting location.
type CreateCourierCommand struct { //nolint:recvcheck // pointer receivers only on private setters
	name     string
	speed    kernel.Speed
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(name string, speed int, location kernel.Location) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setSpeed(speed),
		cmd.setLocation(location),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c CreateCourierCommand) Speed() kernel.Speed {
	return c.speed
}

func (c CreateCourierCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateCourierCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateCourierCommand) setSpeed(speed int) error {
	s, err := kernel.NewSpeed(speed)
	if err != nil {
		return err
	}
	c.speed = s
	return nil
}

func (c *CreateCourierCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
