package commands

import (
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errs.NewValueIsRequiredError("AssignCourierCommand")

// AssignCourierCommand runs one assignment cycle: the oldest Created order is
// matched with the best free courier.
type AssignCourierCommand struct {
	guard guard.ConstructorGuard
}

func NewAssignCourierCommand() AssignCourierCommand {
	return AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}
