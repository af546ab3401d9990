package commands

import (
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrMoveCouriersCommandIsNotConstructed = errs.NewValueIsRequiredError("MoveCouriersCommand")

// MoveCouriersCommand runs one movement tick for every courier with an Assigned order.
type MoveCouriersCommand struct {
	guard guard.ConstructorGuard
}

func NewMoveCouriersCommand() MoveCouriersCommand {
	return MoveCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c MoveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrMoveCouriersCommandIsNotConstructed)
}
