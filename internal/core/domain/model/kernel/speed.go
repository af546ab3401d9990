package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrSpeedIsNotConstructed = errs.NewValueIsRequiredError("speed")
	ErrSpeedMustBePositive   = errors.New("speed must be greater than zero")
)

// Speed is the number of grid cells a courier covers in one movement tick.
type Speed struct {
	value int
	guard guard.ConstructorGuard
}

// NewSpeed returns a Speed for a strictly positive value.
func NewSpeed(value int) (Speed, error) {
	if value <= 0 {
		return Speed{}, errs.NewValueIsInvalidErrorWithCause("speed", ErrSpeedMustBePositive)
	}

	return Speed{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (s Speed) Validate() error {
	return s.guard.Validate(ErrSpeedIsNotConstructed)
}

func (s Speed) Int() int {
	return s.value
}

// TicksToCover returns how many ticks are needed to walk distance cells,
// rounding up so a partial tick counts as a whole one.
func (s Speed) TicksToCover(distance int) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if distance < 0 {
		return 0, errs.NewValueIsOutOfRangeError("distance", distance, 0, "+inf")
	}

	return (distance + s.value - 1) / s.value, nil
}

func (s Speed) String() string {
	return fmt.Sprintf("Speed(%d)", s.value)
}
